package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pscan/core/storage"

	"github.com/minio/minio-go/v7"
)

const bucketScheme = "s3://"

// BucketSource lists the objects of an S3/MinIO bucket.
// Reported paths have the form s3://bucket/key. Folder placeholders are skipped.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Name implements Source.
func (s *BucketSource) Name() string {
	return s.URI(s.Prefix)
}

// URI returns the path reported for an object key.
func (s *BucketSource) URI(key string) string {
	return bucketScheme + s.Bucket + "/" + key
}

// Walk implements Source.
func (s *BucketSource) Walk(ctx context.Context, fn func(path string) error) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.Bucket, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, s.Bucket)
	}

	// Cancelling stops the listing goroutine when fn returns early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.Client.ListObjects(ctx, s.Bucket, minio.ListObjectsOptions{
		Prefix:    s.Prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if err := fn(s.URI(obj.Key)); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Open implements Opener for paths of this bucket.
func (s *BucketSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	key, ok := strings.CutPrefix(path, bucketScheme+s.Bucket+"/")
	if !ok || key == "" {
		return nil, fmt.Errorf("%w: %s", ErrOutsideSource, path)
	}
	return s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
}
