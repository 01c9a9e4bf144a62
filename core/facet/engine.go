package facet

import (
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Observer receives engine events, e.g. to export metrics.
type Observer interface {
	// CacheHit is called when Options is served from the memo table.
	CacheHit()
	// CacheMiss is called when Options has to be computed.
	CacheMiss()
	// Replaced is called after a new Store has been published.
	Replaced(records int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxEntries bounds the memo table. Zero or negative keeps it unbounded.
func WithMaxEntries(n int) Option {
	return func(e *Engine) {
		e.maxEntries = n
	}
}

// WithReporter sets the Reporter used for notices raised by Refresh.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		e.report = r
	}
}

// WithObserver registers an Observer for cache and refresh events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// snapshot pairs a Store with the memo table computed against it.
// A snapshot is never modified after publication except for its memo contents.
type snapshot struct {
	store      *Store
	memo       *memo
	generation uint64
}

// Stats is a point-in-time view of the engine.
type Stats struct {
	Generation       uint64 `json:"generation" yaml:"generation"`
	Records          int    `json:"records" yaml:"records"`
	Params           int    `json:"params" yaml:"params"`
	CachedSelections int    `json:"cached_selections" yaml:"cached_selections"`
	Hits             uint64 `json:"hits" yaml:"hits"`
	Misses           uint64 `json:"misses" yaml:"misses"`
}

// Engine answers cross-filtering queries against the current Store snapshot.
// All methods are safe for concurrent use.
type Engine struct {
	current atomic.Pointer[snapshot]
	flight  singleflight.Group

	maxEntries int
	report     Reporter
	observer   Observer

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewEngine wraps store. A nil store is treated as empty.
func NewEngine(store *Store, opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if store == nil {
		store = Empty()
	}
	e.current.Store(&snapshot{store: store, memo: newMemo(e.maxEntries), generation: 1})
	return e
}

// Store returns the currently published Store.
func (e *Engine) Store() *Store {
	return e.current.Load().store
}

// Generation increases by one every time a new Store is published.
func (e *Engine) Generation() uint64 {
	return e.current.Load().generation
}

// AllParams returns every parameter name of the current Store, sorted.
func (e *Engine) AllParams() []string {
	return e.current.Load().store.Params()
}

// Options returns, for every parameter, the values reachable under selection.
// An impossible selection yields empty Options rather than an error.
func (e *Engine) Options(selection Key) Options {
	return e.options(e.current.Load(), selection).Clone()
}

// options serves selection from snap's memo table, computing and storing it on a miss.
// Concurrent misses for the same selection on the same snapshot share one computation.
func (e *Engine) options(snap *snapshot, selection Key) Options {
	canon := selection.Canonical()
	if opts, ok := snap.memo.get(canon); ok {
		e.hits.Add(1)
		if e.observer != nil {
			e.observer.CacheHit()
		}
		return opts
	}

	e.misses.Add(1)
	if e.observer != nil {
		e.observer.CacheMiss()
	}

	flightKey := strconv.FormatUint(snap.generation, 10) + "|" + canon
	v, _, _ := e.flight.Do(flightKey, func() (any, error) {
		if opts, ok := snap.memo.get(canon); ok {
			return opts, nil
		}
		ids := snap.store.match(selection)
		records := make([]Record, len(ids))
		for i, id := range ids {
			records[i] = snap.store.records[id]
		}
		opts := collectOptions(records)
		snap.memo.put(canon, opts)
		return opts, nil
	})
	return v.(Options)
}

// CrossOptions returns, for every parameter p, the values of p reachable under
// selection with p's own constraint removed. This keeps a parameter from filtering
// out its own alternatives. Parameters with no reachable value map to an empty slice.
func (e *Engine) CrossOptions(selection Key) Options {
	snap := e.current.Load()
	out := make(Options, len(snap.store.params))
	for _, param := range snap.store.params {
		opts := e.options(snap, selection.Without(param))
		values := make([]string, len(opts[param]))
		copy(values, opts[param])
		out[param] = values
	}
	return out
}

// Resolve looks selection up in the current Store.
func (e *Engine) Resolve(selection Key) Result {
	return e.current.Load().store.Lookup(selection)
}

// Refresh builds a new Store from records and publishes it with an empty memo table.
// It returns the notices raised while building.
func (e *Engine) Refresh(records []Record) []Notice {
	store, notices := Build(records, e.report)
	e.Replace(store)
	return notices
}

// Replace publishes store with an empty memo table in a single swap.
func (e *Engine) Replace(store *Store) {
	if store == nil {
		store = Empty()
	}
	for {
		old := e.current.Load()
		next := &snapshot{store: store, memo: newMemo(e.maxEntries), generation: old.generation + 1}
		if e.current.CompareAndSwap(old, next) {
			break
		}
	}
	if e.observer != nil {
		e.observer.Replaced(store.Len())
	}
}

// InvalidateCache drops every memoized Options without touching the Store.
func (e *Engine) InvalidateCache() {
	e.current.Load().memo.clear()
}

// Stats returns counters for the current snapshot.
func (e *Engine) Stats() Stats {
	snap := e.current.Load()
	return Stats{
		Generation:       snap.generation,
		Records:          snap.store.Len(),
		Params:           len(snap.store.params),
		CachedSelections: snap.memo.len(),
		Hits:             e.hits.Load(),
		Misses:           e.misses.Load(),
	}
}
