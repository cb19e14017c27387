package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	// Bucket drivers for the optional -store step.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/xpv0/zli-chunk/internal/compressor"
	"github.com/xpv0/zli-chunk/internal/config"
	"github.com/xpv0/zli-chunk/internal/progress"
	"github.com/xpv0/zli-chunk/internal/store"
	"github.com/xpv0/zli-chunk/pkg/chunkplan"
)

func runCompress(args []string) int {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)

	file := fs.String("f", "", "name of the file to compress")
	bin := fs.String("bin", "", "location of the zli binary (default: zli from PATH)")
	workers := fs.Int("workers", 0, "number of parallel workers (default: 4)")
	chunkSize := fs.String("chunk-size", "", "chunk size before compression, e.g. 1GiB (default: 1GiB)")
	outDir := fs.String("out", "", "directory for compressed artifacts (default: current directory)")
	configPath := fs.String("config", "", "YAML configuration file")
	showProgress := fs.Bool("progress", false, "print progress while compressing")
	keepFailed := fs.Bool("keep-failed", false, "keep the raw chunk file when all codecs fail")
	zstdFallback := fs.Bool("zstd-fallback", false, "append an in-process zstd codec after the zli profiles")
	storeURL := fs.String("store", "", "archive artifacts to this bucket URL after the run (s3://, gs://, file://)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: zli-chunk compress [options]

Split a huge numeric array file into fixed-size chunks and compress
each chunk with the external zli binary, falling back from the le-i64
profile to le-i32 per chunk. Without -f this is a no-op.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	override := config.Config{
		Input:        *file,
		Bin:          *bin,
		Workers:      *workers,
		OutDir:       *outDir,
		Progress:     *showProgress,
		KeepFailed:   *keepFailed,
		ZstdFallback: *zstdFallback,
		Store:        *storeURL,
	}
	if *chunkSize != "" {
		size, err := progress.ParseBytes(*chunkSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse -chunk-size: %v\n", err)
			return ExitInvalidArgs
		}
		override.ChunkSize = size
	}
	cfg = cfg.Merge(override)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if cfg.Input == "" {
		logger.Info("no file provided, exiting")
		return ExitSuccess
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[zli-chunk] Received interrupt, shutting down...")
		cancel()
	}()

	var reporter *progress.Reporter
	if cfg.Progress {
		if info, err := os.Stat(cfg.Input); err == nil {
			reporter = progress.NewReporter(progress.Options{
				TotalSize:   info.Size(),
				TotalChunks: chunkplan.Count(info.Size(), cfg.ChunkSize),
				Workers:     cfg.Workers,
				Source:      cfg.Input,
				ChunkSize:   cfg.ChunkSize,
			})
			reporter.Start()
		}
	}

	outcomes, err := compressor.Run(ctx, cfg.Input, compressor.Options{
		Bin:          cfg.Bin,
		Workers:      cfg.Workers,
		ChunkSize:    cfg.ChunkSize,
		OutDir:       cfg.OutDir,
		KeepFailed:   cfg.KeepFailed,
		ZstdFallback: cfg.ZstdFallback,
		Progress:     reporter,
		Logger:       logger,
	})
	if reporter != nil {
		reporter.Stop()
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		if errors.Is(err, compressor.ErrTooManyWorkers) {
			return ExitInvalidArgs
		}
		return ExitGeneralError
	}

	if cfg.Store != "" && len(outcomes) > 0 {
		artifacts := make([]string, 0, len(outcomes))
		for _, out := range outcomes {
			artifacts = append(artifacts, out.Artifact)
		}
		sort.Strings(artifacts)
		if err := store.Archive(ctx, cfg.Store, artifacts, logger); err != nil {
			logger.Error("archive failed", "error", err)
			return ExitStoreError
		}
	}

	return ExitSuccess
}
