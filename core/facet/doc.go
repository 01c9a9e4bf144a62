// Package facet provides the faceted index and cross-filtering engine.
//
// Files are addressed by a set of named parameters (a Key), e.g. {shape: circle,
// color: red}. The package stores one Record per distinct Key and answers two
// questions for an arbitrary partial Selection: which values are still reachable for
// every parameter (Options), and which file(s) the selection names (Lookup/Resolve).
//
// # Store
//
// A Store is an immutable snapshot built by a Builder. Inserting a Key that is already
// present replaces the previous Record and reports a DuplicateKey notice. Lookup uses
// the subset rule: a Selection matches a Record when every assignment of the Selection
// is present in the Record's Key. The outcome is one of three kinds:
//
//   - NotFound: no Record matches.
//   - Unique: exactly one Record matches; Result.Path is its target.
//   - Ambiguous: several Records match; Result.Matches is a derived Store holding them.
//
// # Engine
//
// The Engine wraps a Store and memoizes Options by canonical Selection. Refresh builds a
// replacement Store and publishes it together with an empty memo table in a single
// atomic swap, so readers never pair a fresh Store with a stale cache.
//
// # Diagnostics
//
// Non-fatal data conditions (duplicate keys, empty capture sets, patterns without named
// groups) are reported as Notice values through a Reporter and are also returned to the
// caller, so they can be asserted in tests without global interception.
//
// # Usage
//
//	store, notices := facet.Build(records, nil)
//	eng := facet.NewEngine(store)
//	opts := eng.Options(facet.NewKey(map[string]string{"shape": "circle"}))
//	res := eng.Resolve(facet.NewKey(map[string]string{"shape": "circle", "color": "red"}))
//	if res.Kind == facet.Unique {
//	    fmt.Println(res.Path)
//	}
package facet
