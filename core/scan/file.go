package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSource walks a local directory tree.
// Reported paths are Root joined with the relative file path, in slash form.
type FileSource struct {
	// Root is the directory to walk.
	Root string
	// Exclude lists doublestar globs matched against root-relative paths.
	// A matching directory is skipped entirely.
	Exclude []string
}

// Name implements Source.
func (s *FileSource) Name() string {
	return s.Root
}

// Walk implements Source.
func (s *FileSource) Walk(ctx context.Context, fn func(path string) error) error {
	for _, pattern := range s.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	info, err := os.Stat(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, s.Root)
		}
		return fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, s.Root)
	}

	return filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		if rel != "." && s.Excluded(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		return fn(filepath.ToSlash(path))
	})
}

// Excluded reports whether the root-relative slash path matches an exclude glob.
func (s *FileSource) Excluded(rel string) bool {
	for _, pattern := range s.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Open implements Opener. Only paths below Root can be opened.
func (s *FileSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, err
	}
	target, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideSource, path)
	}
	return os.Open(target)
}
