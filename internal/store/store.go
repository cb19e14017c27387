package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Archive uploads the given artifact files to the bucket named by
// bucketURL. Uploads run sequentially; the pool has already done its
// fan-out and artifact counts are small compared to chunk bytes.
func Archive(ctx context.Context, bucketURL string, paths []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return fmt.Errorf("store: open bucket: %w", err)
	}
	defer bucket.Close()

	for _, path := range paths {
		uploaded, err := uploadArtifact(ctx, bucket, path)
		if err != nil {
			return fmt.Errorf("store: upload %s: %w", filepath.Base(path), err)
		}
		if uploaded {
			logger.Info("archived artifact", "artifact", filepath.Base(path))
		} else {
			logger.Debug("artifact already archived", "artifact", filepath.Base(path))
		}
	}
	return nil
}

// uploadArtifact copies one file into the bucket under its base name.
// Returns false without uploading when an object of the same size is
// already present.
func uploadArtifact(ctx context.Context, bucket *blob.Bucket, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat artifact: %w", err)
	}

	key := filepath.Base(path)
	attrs, err := bucket.Attributes(ctx, key)
	switch {
	case err == nil:
		if attrs.Size == info.Size() {
			return false, nil
		}
		// Size mismatch means a previous upload was interrupted or the
		// artifact changed; overwrite it.
	case gcerrors.Code(err) != gcerrors.NotFound:
		return false, fmt.Errorf("check existing object: %w", err)
	}

	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return false, fmt.Errorf("create writer: %w", err)
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return false, fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return false, fmt.Errorf("close writer: %w", err)
	}
	return true, nil
}
