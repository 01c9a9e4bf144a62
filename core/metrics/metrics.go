package metrics

import (
	"pscan/core/index"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	optionsLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pscan_options_lookups_total",
		Help: "Options computations by memo table outcome",
	}, []string{"result"})

	storeReplacements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pscan_store_replacements_total",
		Help: "Number of times a new store was published",
	})

	storeRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pscan_store_records",
		Help: "Number of records in the published store",
	})

	rescanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pscan_rescan_duration_seconds",
		Help:    "Duration of rescans",
		Buckets: prometheus.DefBuckets,
	}, []string{"changed"})

	rescanNotices = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pscan_scan_notices_total",
		Help: "Notices raised while scanning, by kind",
	}, []string{"kind"})
)

// Engine implements facet.Observer.
type Engine struct{}

// CacheHit implements facet.Observer.
func (Engine) CacheHit() {
	optionsLookups.WithLabelValues("hit").Inc()
}

// CacheMiss implements facet.Observer.
func (Engine) CacheMiss() {
	optionsLookups.WithLabelValues("miss").Inc()
}

// Replaced implements facet.Observer.
func (Engine) Replaced(records int) {
	storeReplacements.Inc()
	storeRecords.Set(float64(records))
}

// ObserveRescan records the outcome of a rescan.
func ObserveRescan(r *index.Report) {
	changed := "false"
	if r.Changed {
		changed = "true"
	}
	rescanDuration.WithLabelValues(changed).Observe(float64(r.DurationMs) / 1000)
	for _, n := range r.Notices {
		rescanNotices.WithLabelValues(string(n.Kind)).Inc()
	}
}

// Handler serves the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
