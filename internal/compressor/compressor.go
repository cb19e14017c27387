package compressor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xpv0/zli-chunk/internal/codec"
	"github.com/xpv0/zli-chunk/internal/progress"
	"github.com/xpv0/zli-chunk/pkg/chunkplan"
)

// MaxWorkers caps the configured worker count. Anything above this is
// almost certainly a typo and is rejected before any chunk is touched.
const MaxWorkers = 1024

// Defaults applied by Run when the corresponding option is zero.
const (
	DefaultWorkers   = 4
	DefaultChunkSize = 1 << 30
)

// ErrTooManyWorkers is returned when the configured worker count
// exceeds MaxWorkers.
var ErrTooManyWorkers = errors.New("compressor: worker count too high")

// Options configures a compression run.
type Options struct {
	// Bin is the external compression binary. Default: "zli",
	// resolved via PATH.
	Bin string

	// Workers is the number of parallel workers. Clamped to the chunk
	// count; values above MaxWorkers are rejected. Default: 4.
	Workers int

	// ChunkSize is the raw size of each chunk in bytes. Default: 1 GiB.
	ChunkSize int64

	// OutDir is where chunk files and compressed artifacts are
	// written. Default: current directory.
	OutDir string

	// KeepFailed keeps the raw chunk file on disk when every codec
	// failed, for debugging. Successful chunks are always cleaned up.
	KeepFailed bool

	// ZstdFallback appends an in-process zstd codec after the
	// external profiles.
	ZstdFallback bool

	// Chain overrides the codec fallback chain. When nil, a chain is
	// built from Bin (and ZstdFallback).
	Chain *codec.Chain

	// Progress is an optional progress reporter.
	Progress *progress.Reporter

	// Logger receives per-chunk progress and failure detail.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Outcome records the result of one chunk.
type Outcome struct {
	Index    int
	Artifact string // path of the compressed artifact, empty on failure
	Err      error
}

// Run compresses src chunk by chunk and returns the per-chunk outcomes
// in completion order. On a fatal chunk failure the returned error is
// the first one encountered; outcomes for chunks that never started are
// absent. The wall-clock duration of the pool is logged either way.
func Run(ctx context.Context, src string, opts Options) ([]Outcome, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Bin == "" {
		opts.Bin = "zli"
	}
	if opts.Workers == 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	if opts.Workers < 1 {
		return nil, fmt.Errorf("compressor: workers must be positive, got %d", opts.Workers)
	}
	if opts.Workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyWorkers, opts.Workers, MaxWorkers)
	}
	if opts.ChunkSize < 1 {
		return nil, fmt.Errorf("compressor: chunk size must be positive, got %d", opts.ChunkSize)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	chunks := chunkplan.Plan(info.Size(), opts.ChunkSize)
	if len(chunks) == 0 {
		opts.Logger.Info("source is empty, nothing to compress", "source", src)
		return nil, nil
	}

	chain := opts.Chain
	if chain == nil {
		chain = codec.DefaultChain(opts.Logger, opts.Bin)
		if opts.ZstdFallback {
			chain.Append(&codec.Zstd{})
		}
	}

	workers := opts.Workers
	if len(chunks) < workers {
		workers = len(chunks)
	}

	opts.Logger.Info("starting run",
		"source", src,
		"size", info.Size(),
		"chunks", len(chunks),
		"chunk_size", opts.ChunkSize,
		"workers", workers,
	)

	start := time.Now()
	outcomes, err := runPool(ctx, src, chunks, workers, chain, opts)
	opts.Logger.Info("run finished", "elapsed", time.Since(start))

	if err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	opts.Logger.Info("all chunks compressed", "chunks", len(outcomes))
	return outcomes, nil
}

// runPool fans chunks out over the worker pool and joins it. On the
// first chunk failure the pool context is cancelled so no further
// chunks are scheduled; chunks already in flight are awaited before the
// error is returned.
func runPool(ctx context.Context, src string, chunks []chunkplan.Chunk, workers int, chain *codec.Chain, opts Options) ([]Outcome, error) {
	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		outcomes []Outcome
		firstErr error
	)

	jobs := make(chan chunkplan.Chunk)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				out := processChunk(poolCtx, src, chunk, chain, opts)

				mu.Lock()
				outcomes = append(outcomes, out)
				if out.Err != nil && firstErr == nil {
					firstErr = fmt.Errorf("chunk %d: %w", out.Index, out.Err)
					cancel()
				}
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, chunk := range chunks {
			select {
			case jobs <- chunk:
			case <-poolCtx.Done():
				return
			}
		}
	}()

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return outcomes, firstErr
}

// processChunk is the end-to-end routine for one chunk: extract the
// byte range to a temporary chunk file, run the fallback chain, delete
// the chunk file, report the outcome.
func processChunk(ctx context.Context, src string, chunk chunkplan.Chunk, chain *codec.Chain, opts Options) Outcome {
	out := Outcome{Index: chunk.Index}

	if opts.Progress != nil {
		opts.Progress.ChunkStarted()
	}

	tmp := filepath.Join(opts.OutDir, fmt.Sprintf("%d.%s", chunk.Index, codec.ArrayExtension))
	if err := extractChunk(src, chunk, tmp); err != nil {
		out.Err = fmt.Errorf("extract: %w", err)
		if opts.Progress != nil {
			opts.Progress.ChunkFailed()
		}
		return out
	}

	artifact, err := chain.Compress(ctx, tmp)
	if err != nil {
		out.Err = err
	} else {
		out.Artifact = artifact
	}

	// The raw chunk file is deleted whatever the compression outcome.
	// A failed delete is logged but never overrides that outcome.
	if out.Err != nil && opts.KeepFailed {
		opts.Logger.Warn("keeping failed chunk file", "path", tmp)
	} else if rmErr := os.Remove(tmp); rmErr != nil {
		opts.Logger.Error("remove chunk file", "path", tmp, "error", rmErr)
	}

	if opts.Progress != nil {
		if out.Err != nil {
			opts.Progress.ChunkFailed()
		} else {
			opts.Progress.ChunkCompleted(chunk.Length)
		}
	}

	if out.Err == nil {
		opts.Logger.Debug("chunk compressed", "index", chunk.Index, "artifact", out.Artifact)
	}
	return out
}

// extractChunk copies the chunk's byte range from src into dst.
func extractChunk(src string, chunk chunkplan.Chunk, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	w, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create chunk file: %w", err)
	}

	n, err := io.Copy(w, io.NewSectionReader(f, chunk.Offset, chunk.Length))
	if err != nil {
		w.Close()
		return fmt.Errorf("copy chunk: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close chunk file: %w", err)
	}
	if n != chunk.Length {
		return fmt.Errorf("short read: got %d bytes, want %d", n, chunk.Length)
	}
	return nil
}
