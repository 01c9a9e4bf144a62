package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pscan/core/facet"
	"pscan/core/scan"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotReadable is returned by Open when the source cannot serve file content.
var ErrNotReadable = errors.New("source does not support reading files")

// Report summarizes one rescan.
type Report struct {
	// Records is the number of records produced by the scan.
	Records int `json:"records" yaml:"records"`
	// Changed is false when the scan matched the published content exactly.
	Changed bool `json:"changed" yaml:"changed"`
	// Generation is the engine generation after the rescan.
	Generation uint64 `json:"generation" yaml:"generation"`
	// Notices lists the conditions raised while scanning.
	Notices []facet.Notice `json:"notices" yaml:"notices"`
	// DurationMs is the wall time of the scan in milliseconds.
	DurationMs int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Index couples an Engine with the Scanner that feeds it.
type Index struct {
	engine  *facet.Engine
	scanner *scan.Scanner
	logger  *zap.Logger
	sf      singleflight.Group
}

// New creates an Index. The engine keeps serving its current Store until the first Rescan.
func New(engine *facet.Engine, scanner *scan.Scanner, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		engine:  engine,
		scanner: scanner,
		logger:  logger,
	}
}

// Engine returns the engine queried by adapters.
func (i *Index) Engine() *facet.Engine {
	return i.engine
}

// Scanner returns the scanner feeding the engine.
func (i *Index) Scanner() *scan.Scanner {
	return i.scanner
}

// Rescan scans the source and publishes the result if its content changed. The memo
// table is cleared either way.
//
// Calls made while a rescan is running wait for it and share its report. The shared
// scan is not cancelled with any single caller; a caller whose ctx ends stops waiting
// and gets ctx.Err().
func (i *Index) Rescan(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := i.sf.DoChan("rescan", func() (any, error) {
		return i.rescan(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			i.logger.Debug("Joined running rescan")
		}
		return res.Val.(*Report), nil
	}
}

func (i *Index) rescan(ctx context.Context) (*Report, error) {
	start := time.Now()

	res, err := i.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rescan failed: %w", err)
	}

	changed := res.Store.Fingerprint() != i.engine.Store().Fingerprint()
	if changed {
		i.engine.Replace(res.Store)
	} else {
		i.engine.InvalidateCache()
	}

	report := &Report{
		Records:    res.Store.Len(),
		Changed:    changed,
		Generation: i.engine.Generation(),
		Notices:    res.Notices,
		DurationMs: time.Since(start).Milliseconds(),
	}

	i.logger.Info("Rescan finished",
		zap.String("source", i.scanner.Source().Name()),
		zap.Int("scanned", res.Scanned),
		zap.Int("records", report.Records),
		zap.Bool("changed", changed),
		zap.Uint64("generation", report.Generation),
		zap.Int("notices", len(res.Notices)),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// Open reads the file behind path if the source supports it.
func (i *Index) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	opener, ok := i.scanner.Source().(scan.Opener)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotReadable, i.scanner.Source().Name())
	}
	return opener.Open(ctx, path)
}
