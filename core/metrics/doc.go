// Package metrics exports Prometheus metrics for the index.
//
// Engine registers as a facet.Observer and counts memo hits, misses and store
// replacements. ObserveRescan records scan durations. Handler serves the default
// registry on a Fiber route.
package metrics
