package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// copyBufferSize is the chunk size used when streaming a response body
// into the bucket. Recording bodies are never held in memory whole.
const copyBufferSize = 4 * 1024 * 1024

// Store writes recording files to a destination bucket.
type Store struct {
	bucket *blob.Bucket
}

// Open opens the destination. A dest containing a URL scheme is opened
// through the blob URL mux (s3://, gs://, file://); anything else is
// treated as a local directory rooted at dest, created if absent.
func Open(ctx context.Context, dest string) (*Store, error) {
	if strings.Contains(dest, "://") {
		bucket, err := blob.OpenBucket(ctx, dest)
		if err != nil {
			return nil, fmt.Errorf("store: open bucket %s: %w", dest, err)
		}
		return &Store{bucket: bucket}, nil
	}

	bucket, err := fileblob.OpenBucket(dest, &fileblob.Options{
		CreateDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open directory %s: %w", dest, err)
	}
	return &Store{bucket: bucket}, nil
}

// Write streams r into the bucket under key, returning the number of bytes
// written. Intermediate directories implied by the key are created as
// needed by the driver.
func (s *Store) Write(ctx context.Context, key string, r io.Reader) (int64, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return 0, fmt.Errorf("store: create %s: %w", key, err)
	}

	n, err := io.CopyBuffer(w, r, make([]byte, copyBufferSize))
	if err != nil {
		w.Close()
		return n, fmt.Errorf("store: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return n, fmt.Errorf("store: close %s: %w", key, err)
	}

	return n, nil
}

// Exists reports whether key is already present in the bucket.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store: stat %s: %w", key, err)
	}
	return ok, nil
}

// Close releases the underlying bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}
