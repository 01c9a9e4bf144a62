package facet

import (
	"container/list"
	"sort"
	"sync"
)

// Options maps each parameter name to its sorted, distinct reachable values.
type Options map[string][]string

// Names returns the parameter names in sorted order.
func (o Options) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy so callers cannot mutate cached values.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for name, values := range o {
		cp := make([]string, len(values))
		copy(cp, values)
		out[name] = cp
	}
	return out
}

// collectOptions accumulates every assignment of the given records.
func collectOptions(records []Record) Options {
	sets := make(map[string]map[string]struct{})
	for _, r := range records {
		for _, a := range r.Key.pairs {
			set, ok := sets[a.Name]
			if !ok {
				set = make(map[string]struct{})
				sets[a.Name] = set
			}
			set[a.Value] = struct{}{}
		}
	}

	opts := make(Options, len(sets))
	for name, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		opts[name] = values
	}
	return opts
}

// memo caches Options by canonical selection for one Store snapshot.
// A positive max bounds it with least-recently-used eviction; zero means unbounded.
type memo struct {
	mu      sync.Mutex
	max     int
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type memoEntry struct {
	key  string
	opts Options
}

func newMemo(max int) *memo {
	return &memo{
		max:     max,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (m *memo) get(key string) (Options, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoEntry).opts, true
}

func (m *memo) put(key string, opts Options) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		el.Value.(*memoEntry).opts = opts
		m.order.MoveToFront(el)
		return
	}

	m.entries[key] = m.order.PushFront(&memoEntry{key: key, opts: opts})

	if m.max > 0 {
		for m.order.Len() > m.max {
			oldest := m.order.Back()
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoEntry).key)
		}
	}
}

func (m *memo) clear() {
	m.mu.Lock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
	m.mu.Unlock()
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
