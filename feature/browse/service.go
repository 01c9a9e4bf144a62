package browse

import (
	"context"
	"io"

	"pscan/core/facet"
	"pscan/core/index"
	"pscan/core/metrics"

	"go.uber.org/zap"
)

// Service answers browse queries against an Index.
type Service struct {
	index  *index.Index
	logger *zap.Logger
}

// NewService creates a new browse service.
func NewService(idx *index.Index, logger *zap.Logger) *Service {
	return &Service{
		index:  idx,
		logger: logger,
	}
}

// Params returns every parameter name, sorted.
func (s *Service) Params() []string {
	return s.index.Engine().AllParams()
}

// Options returns the cross-filtered options for a selection: each parameter's
// values are computed with every other parameter of the selection fixed.
func (s *Service) Options(selection facet.Key) facet.Options {
	return s.index.Engine().CrossOptions(selection)
}

// Resolve looks up the records named by a selection.
func (s *Service) Resolve(selection facet.Key) facet.Result {
	return s.index.Engine().Resolve(selection)
}

// Open reads the file behind a resolved path.
func (s *Service) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.index.Open(ctx, path)
}

// Refresh rescans the source.
func (s *Service) Refresh(ctx context.Context) (*index.Report, error) {
	report, err := s.index.Rescan(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRescan(report)
	return report, nil
}

// InvalidateCache drops the memoized options.
func (s *Service) InvalidateCache() {
	s.index.Engine().InvalidateCache()
}

// Stats returns the engine counters.
func (s *Service) Stats() facet.Stats {
	return s.index.Engine().Stats()
}
