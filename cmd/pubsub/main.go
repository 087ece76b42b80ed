// Command pubsub records logsSubscribe notifications as benchmark log lines.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/config"
	"solana-shreds-lab/internal/listener"
	"solana-shreds-lab/internal/logging"
	"solana-shreds-lab/internal/observability"
	"solana-shreds-lab/internal/solana"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (optional)")
	wsURL := flag.String("ws-url", "", "Solana websocket endpoint (overrides WS_URL)")
	rpcURL := flag.String("rpc-url", "", "Solana HTTP endpoint checked before subscribing (overrides RPC_URL)")
	out := flag.String("out", "", "Log file to append to (default stdout)")
	metricsAddr := flag.String("metrics-addr", "", "Address to serve /metrics on (e.g. :9102)")
	duration := flag.Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		if err := config.LoadFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)

	// Explicit flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ws-url":
			cfg.Listener.WSURL = *wsURL
		case "rpc-url":
			cfg.Listener.RPCURL = *rpcURL
		case "out":
			cfg.Listener.Output = *out
		case "metrics-addr":
			cfg.Metrics.Address = *metricsAddr
		case "duration":
			cfg.Listener.Duration = *duration
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error running listener: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Listener.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Listener.Duration)
		defer cancel()
	}

	w, closeOut, err := openOutput(cfg.Listener.Output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer closeOut()

	if cfg.Metrics.Address != "" {
		srv := serveMetrics(cfg.Metrics.Address, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	filter := solana.LogsFilter{
		Mentions:   cfg.Listener.Mentions,
		Commitment: cfg.Listener.Commitment,
	}

	if cfg.Listener.RPCURL != "" {
		rpc := solana.NewHTTPClient(cfg.Listener.RPCURL)
		if _, err := listener.Preflight(ctx, rpc, filter, logger.Named("preflight")); err != nil {
			return fmt.Errorf("preflight: %w", err)
		}
	}

	client, err := solana.NewWSClient(ctx, cfg.Listener.WSURL, &cfg.Listener.WS, logger)
	if err != nil {
		return fmt.Errorf("connect websocket: %w", err)
	}
	defer client.Close()

	rec := listener.NewRecorder(client, filter, w).WithLogger(logger.Named("listener"))

	start := time.Now()
	if err := rec.Run(ctx); err != nil {
		return err
	}
	logger.Info("listener stopped",
		zap.Int("recorded", rec.Recorded()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// openOutput opens path for appending, or stdout when path is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// serveMetrics starts the Prometheus endpoint in the background.
func serveMetrics(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
