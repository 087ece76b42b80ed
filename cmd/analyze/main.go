// Command analyze compares pubsub and shreds timing in a benchmark log.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/idhash"
	"solana-shreds-lab/internal/logging"
	"solana-shreds-lab/internal/logscan"
	"solana-shreds-lab/internal/observability"
	"solana-shreds-lab/internal/storage"
	chstore "solana-shreds-lab/internal/storage/clickhouse"
	"solana-shreds-lab/internal/storage/migrations"
	pgstore "solana-shreds-lab/internal/storage/postgres"
)

func main() {
	logPath := flag.String("log", "", "Benchmark log file to analyze (default stdin)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string to store the run summary (optional)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string to store the parsed records (optional)")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(*logLevel, logging.FormatConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	text, err := readLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading log: %v\n", err)
		os.Exit(1)
	}

	pubsub, shreds, err := logscan.Classify(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing log: %v\n", err)
		os.Exit(1)
	}

	c := logscan.Compare(pubsub, shreds)
	c.CreatedAt = time.Now().UnixMilli()
	observability.RecordRun(string(c.Verdict))

	if err := logscan.WriteReport(os.Stdout, c); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	if *postgresDSN == "" && *clickhouseDSN == "" {
		return
	}

	ctx := context.Background()
	comparisons, records, closeStores, err := openStores(ctx, logger, *postgresDSN, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to databases: %v\n", err)
		os.Exit(1)
	}
	defer closeStores()

	runID := idhash.ComputeRunID(text)
	if err := logscan.Persist(ctx, comparisons, records, runID, c, pubsub, shreds); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing run: %v\n", err)
		closeStores()
		os.Exit(1)
	}
	logger.Info("stored analysis run",
		zap.String("runID", runID),
		zap.Int("pubsub", c.PubsubCount),
		zap.Int("shreds", c.ShredsCount),
		zap.String("verdict", string(c.Verdict)))
}

// readLog reads the whole log from path, or stdin when path is empty.
func readLog(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// openStores connects to the configured databases and applies migrations.
// A store whose DSN is empty is returned as nil.
func openStores(ctx context.Context, log *zap.Logger, postgresDSN, clickhouseDSN string) (
	storage.ComparisonStore,
	storage.TxRecordStore,
	func(),
	error,
) {
	var (
		comparisons storage.ComparisonStore
		records     storage.TxRecordStore
		closers     []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		closers = nil
	}

	if postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			closeAll()
			return nil, nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Debug("postgres migrations", zap.Strings("applied", applied))
		comparisons = pgstore.NewComparisonStore(pool)
	}

	if clickhouseDSN != "" {
		conn, err := chstore.OpenDatabase(ctx, clickhouseDSN)
		if err != nil {
			closeAll()
			return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })
		applied, err := migrations.RunClickhouseMigrations(ctx, conn)
		if err != nil {
			closeAll()
			return nil, nil, nil, fmt.Errorf("migrate clickhouse: %w", err)
		}
		log.Debug("clickhouse migrations", zap.Strings("applied", applied))
		records = chstore.NewTxRecordStore(conn)
	}

	return comparisons, records, closeAll, nil
}
