package scan

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrRootNotFound is returned when the scanned directory does not exist.
	ErrRootNotFound = errors.New("scan root not found")
	// ErrBucketNotFound is returned when the scanned bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrTableNotFound is returned when the catalog table does not exist.
	ErrTableNotFound = errors.New("catalog table not found")
	// ErrColumnNotFound is returned when the catalog table lacks the path column.
	ErrColumnNotFound = errors.New("catalog column not found")
	// ErrOutsideSource is returned by Open for paths the source did not produce.
	ErrOutsideSource = errors.New("path is outside of the source")
)

// Source produces the paths to scan.
type Source interface {
	// Name describes the source in logs and errors.
	Name() string
	// Walk calls fn for every path, sequentially. An error from fn stops the walk
	// and is returned.
	Walk(ctx context.Context, fn func(path string) error) error
}

// Opener is implemented by sources that can read the content behind a path.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ListSource serves a fixed list of paths.
type ListSource struct {
	Paths []string
}

// Name implements Source.
func (s *ListSource) Name() string {
	return "list"
}

// Walk implements Source.
func (s *ListSource) Walk(ctx context.Context, fn func(path string) error) error {
	for _, p := range s.Paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}
