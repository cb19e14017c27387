// Package codec compresses materialized chunk files.
//
// A [Codec] turns one raw chunk file into one durable compressed
// artifact. The primary implementation, [Tool], shells out to the
// external zli binary with a named profile; [Zstd] compresses
// in-process and exists as an optional last resort for chunks no
// external profile accepts.
//
// # Fallback
//
// Not every numeric layout is compatible with every profile, so a
// [Chain] tries an ordered list of codecs and stops at the first
// success. There is no pre-inspection of the data: each codec is simply
// tried in order. Individual failures are logged and absorbed; only
// when every codec has failed does the chain fail, with an error
// wrapping [ErrExhausted].
//
// # Artifacts
//
// Each codec derives its artifact name from the input name, so a chunk
// file 3.npy compresses to 3.npy.8.zli (le-i64), 3.npy.4.zli (le-i32)
// or 3.npy.zst (in-process zstd). The numeric infix records which
// element width succeeded.
package codec
