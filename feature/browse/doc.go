// Package browse serves the parametric browser over HTTP.
//
// The feature registers a single page UI and a JSON API on the Fiber application.
// The page keeps the current picks client side and asks the API for cross-filtered
// options after every change: each parameter lists the values still reachable with
// all other picks fixed, and a pick that is no longer valid snaps to the first
// remaining value.
//
// # Routes
//
//   - GET /: the browse page
//   - GET /api/params: {"params": [...]}
//   - GET /api/options?state={...}: cross-filtered options; invalid JSON means no picks
//   - GET /api/resolve?selection={...}: unique, ambiguous or not_found (404)
//   - GET /api/file?selection={...}: the uniquely resolved file content
//   - GET /api/stats: engine counters
//   - POST /api/refresh: rescan the source, concurrent calls share one scan
//   - DELETE /api/cache: drop memoized options
//   - GET /metrics: Prometheus metrics
package browse
