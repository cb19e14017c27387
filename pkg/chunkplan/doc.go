// Package chunkplan computes fixed-size chunk tilings of large files.
//
// A plan covers the byte range [0, fileSize) with contiguous chunks of
// chunkSize bytes each; only the last chunk may be shorter. Chunks carry
// a dense zero-based index so downstream stages can derive unique
// per-chunk file names from it.
//
// Planning is pure arithmetic: no file is opened and no descriptor
// depends on anything but the two sizes. Reconstructing the same plan
// later only requires the same fileSize and chunkSize.
package chunkplan
