// Package progress provides progress reporting for compression runs.
//
// This package outputs human-readable progress information, including
// completion percentage, raw-byte throughput, and chunk counts.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    TotalSize:   totalBytes,
//	    TotalChunks: numChunks,
//	    Output:      os.Stderr,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as chunks complete
//	reporter.ChunkCompleted(chunkSize)
//
// # Output Format
//
//	[zli-chunk] Compressing: dataset.npy
//	[zli-chunk] Total size: 100.0 GiB | Chunks: 100 x 1.0 GiB | Workers: 4
//	[zli-chunk] Progress: 45.0% | 45.0 GiB / 100.0 GiB | Throughput: 400 MiB/s
//	[zli-chunk] Chunks: 45 completed | 4 in-progress | 51 pending
package progress
