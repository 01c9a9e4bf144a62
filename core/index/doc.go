// Package index ties a Scanner to a facet Engine.
//
// An Index owns the engine that presentation adapters query and the scanner that
// feeds it. Rescan runs the scanner and publishes the result, unless the scanned
// content has the same fingerprint as the published Store; in that case the engine
// and its memo table are left untouched.
//
// Concurrent Rescan calls share a single scan.
//
// # Usage
//
//	idx := index.New(engine, scanner, logger)
//	report, err := idx.Rescan(ctx)
//	opts := idx.Engine().CrossOptions(selection)
package index
