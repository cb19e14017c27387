// Package store archives compressed artifacts to object storage.
//
// Archiving is an optional post-run step: after a successful run the
// compressed chunk artifacts can be copied into a bucket named by a
// gocloud.dev URL (s3://, gs://, file://, mem://). Artifacts are keyed
// by their base file name, so a bucket holds the same {index}.npy.N.zli
// layout a local destination directory would. Objects that already
// exist with the expected size are skipped, which makes re-running the
// archive step after a partial upload cheap.
package store
