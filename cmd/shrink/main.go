// Command shrink reduces the Raydium liquidity list to pools of interest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/logging"
	"solana-shreds-lab/internal/raydium"
)

func main() {
	file := flag.String("file", "./raydium.json", "Raydium liquidity JSON file, rewritten in place")
	allowFiltered := flag.Bool("allow-filtered", false, "Accept a file that was already filtered (no official list)")
	download := flag.Bool("download", false, "Download the liquidity list before filtering")
	update := flag.Bool("update", false, "Replace an existing file when downloading")
	url := flag.String("url", raydium.DefaultURL, "Liquidity list URL")
	index := flag.Bool("index", false, "Log the retained pools grouped by mint")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(*logLevel, logging.FormatConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *download {
		d := raydium.NewDownloader(nil, *url, logger.Named("download"))
		if _, err := d.Download(ctx, *file, *update); err != nil {
			fmt.Fprintf(os.Stderr, "Error downloading liquidity list: %v\n", err)
			os.Exit(1)
		}
	}

	doc, err := raydium.LoadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *file, err)
		os.Exit(1)
	}

	allow := raydium.DefaultAllowList()
	filter := raydium.NewFilter(allow).WithLogger(logger.Named("filter"))
	if *allowFiltered {
		filter = filter.WithOfficialOptional()
	}

	out, err := filter.Apply(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error filtering %s: %v\n", *file, err)
		os.Exit(1)
	}

	if err := raydium.WriteFile(*file, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *file, err)
		os.Exit(1)
	}

	if !*index {
		return
	}

	pools, err := out.Pools()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading pools: %v\n", err)
		os.Exit(1)
	}
	idx, err := raydium.IndexByMint(pools, allow, logger.Named("index"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error indexing pools: %v\n", err)
		os.Exit(1)
	}
	for _, mint := range allow.Mints() {
		keys := idx.Pools[mint]
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, k.Pool.String())
		}
		logger.Info("pools for mint", zap.String("mint", mint), zap.Int("count", len(keys)), zap.Strings("pools", ids))
	}
}
