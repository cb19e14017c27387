// Package compressor orchestrates parallel chunk compression.
//
// A run splits the source file into fixed-size chunks, fans them out
// over a bounded worker pool, and compresses each chunk independently
// through a codec fallback chain. Chunks share nothing: each worker
// reads its own byte range from the source, materializes it to a
// uniquely named temporary file, compresses it, and deletes the
// temporary file whether or not compression succeeded.
//
// # Worker Pool
//
// Workers receive chunk descriptors from a channel. The pool size is
// clamped to the chunk count so no worker sits idle on small inputs.
// There is no ordering guarantee between chunks; the contract is that
// every chunk is attempted at most once and the pool is joined before
// Run returns.
//
// # Failure
//
// Codec-level failures are absorbed by the fallback chain. When a
// chunk exhausts every codec, the run is fatal: the pool stops
// scheduling new chunks, waits for in-flight chunks to finish, and Run
// returns the first error. No partial-success summary is produced and
// already-written artifacts from other chunks are left in place.
package compressor
