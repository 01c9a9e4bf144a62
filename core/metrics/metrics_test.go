package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"pscan/core/facet"
	"pscan/core/index"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineObserver(t *testing.T) {
	hits := testutil.ToFloat64(optionsLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(optionsLookups.WithLabelValues("miss"))
	replacements := testutil.ToFloat64(storeReplacements)

	eng := facet.NewEngine(nil, facet.WithObserver(Engine{}))
	eng.Refresh([]facet.Record{
		{Key: facet.NewKey(map[string]string{"a": "1"}), Path: "/p1"},
		{Key: facet.NewKey(map[string]string{"a": "2"}), Path: "/p2"},
	})
	eng.Options(facet.Key{})
	eng.Options(facet.Key{})

	assert.Equal(t, hits+1, testutil.ToFloat64(optionsLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(optionsLookups.WithLabelValues("miss")))
	assert.Equal(t, replacements+1, testutil.ToFloat64(storeReplacements))
	assert.Equal(t, float64(2), testutil.ToFloat64(storeRecords))
}

func TestObserveRescan(t *testing.T) {
	before := testutil.ToFloat64(rescanNotices.WithLabelValues(string(facet.NoticeDuplicateKey)))

	ObserveRescan(&index.Report{
		Changed:    true,
		DurationMs: 12,
		Notices:    []facet.Notice{{Kind: facet.NoticeDuplicateKey}},
	})

	assert.Equal(t, before+1, testutil.ToFloat64(rescanNotices.WithLabelValues(string(facet.NoticeDuplicateKey))))
}

func TestHandler(t *testing.T) {
	storeReplacements.Add(0)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pscan_store_replacements_total")
}
