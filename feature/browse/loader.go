package browse

import (
	"pscan/core/index"
	"pscan/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the browse feature for an index.
func NewFeature(idx *index.Index, logger *zap.Logger) *Feature {
	svc := NewService(idx, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "browse"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the browse page, the JSON API and the metrics endpoint.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	app.Get("/metrics", metrics.Handler())
	return nil
}
