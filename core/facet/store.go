package facet

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Record is one indexed file: a Key plus the path it points to.
type Record struct {
	Key  Key    `json:"key" yaml:"key"`
	Path string `json:"path" yaml:"path"`
}

// Builder collects records for a new Store. It is not safe for concurrent use.
type Builder struct {
	records map[string]Record
	report  Reporter
	notices []Notice
}

// NewBuilder returns an empty Builder. Notices are forwarded to report (which may be nil)
// and kept for Notices.
func NewBuilder(report Reporter) *Builder {
	return &Builder{
		records: make(map[string]Record),
		report:  report,
	}
}

// Insert stores path under key, replacing any Record with an equal key.
// A replacement is reported as a DuplicateKey notice and returns true.
func (b *Builder) Insert(key Key, path string) bool {
	canon := key.Canonical()
	prev, exists := b.records[canon]
	b.records[canon] = Record{Key: key, Path: path}
	if !exists {
		return false
	}

	n := Notice{
		Kind:      NoticeDuplicateKey,
		Message:   fmt.Sprintf("duplicate parameter combination %s; overwriting previous entry %q", key, prev.Path),
		Key:       key,
		Path:      path,
		Discarded: prev.Path,
	}
	b.notices = append(b.notices, n)
	b.report.Report(n)
	return true
}

// Contains reports whether key has been inserted.
func (b *Builder) Contains(key Key) bool {
	_, ok := b.records[key.Canonical()]
	return ok
}

// Notices returns the notices raised so far.
func (b *Builder) Notices() []Notice {
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

// Build publishes the collected records as an immutable Store.
// The Builder can keep being used; later inserts do not affect the returned Store.
func (b *Builder) Build() *Store {
	records := make([]Record, 0, len(b.records))
	for _, r := range b.records {
		records = append(records, r)
	}
	return newStore(records)
}

// Build inserts records in order and returns the resulting Store along with the
// notices raised while building.
func Build(records []Record, report Reporter) (*Store, []Notice) {
	b := NewBuilder(report)
	for _, r := range records {
		b.Insert(r.Key, r.Path)
	}
	return b.Build(), b.Notices()
}

// Store is an immutable set of Records with at most one Record per Key.
// All methods are safe for concurrent use.
type Store struct {
	records  []Record         // sorted by canonical key
	byKey    map[string]int   // canonical key -> record index
	postings map[string][]int // canonical assignment -> ascending record indices
	params   []string
}

// Empty returns a Store without records.
func Empty() *Store {
	return newStore(nil)
}

func newStore(records []Record) *Store {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key.Canonical() < records[j].Key.Canonical()
	})

	s := &Store{
		records:  records,
		byKey:    make(map[string]int, len(records)),
		postings: make(map[string][]int),
	}

	names := make(map[string]struct{})
	for i, r := range records {
		s.byKey[r.Key.Canonical()] = i
		for _, a := range r.Key.pairs {
			pk := canonicalAssignment(a)
			s.postings[pk] = append(s.postings[pk], i)
			names[a.Name] = struct{}{}
		}
	}

	s.params = make([]string, 0, len(names))
	for name := range names {
		s.params = append(s.params, name)
	}
	sort.Strings(s.params)

	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Contains reports whether a Record with exactly this key exists.
func (s *Store) Contains(key Key) bool {
	_, ok := s.byKey[key.Canonical()]
	return ok
}

// Get returns the Record stored under exactly this key.
func (s *Store) Get(key Key) (Record, bool) {
	i, ok := s.byKey[key.Canonical()]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Keys returns all stored keys ordered by canonical form.
func (s *Store) Keys() []Key {
	keys := make([]Key, len(s.records))
	for i, r := range s.records {
		keys[i] = r.Key
	}
	return keys
}

// Records returns all records ordered by canonical key.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Params returns every parameter name used by any key, sorted.
func (s *Store) Params() []string {
	out := make([]string, len(s.params))
	copy(out, s.params)
	return out
}

// Lookup resolves selection with the subset rule.
func (s *Store) Lookup(selection Key) Result {
	ids := s.match(selection)
	switch len(ids) {
	case 0:
		return Result{Kind: NotFound}
	case 1:
		r := s.records[ids[0]]
		return Result{Kind: Unique, Path: r.Path, Record: r}
	default:
		return Result{Kind: Ambiguous, Matches: s.subset(ids)}
	}
}

// Fingerprint hashes the full (key, path) content of the Store.
// Stores with equal content have equal fingerprints.
func (s *Store) Fingerprint() uint64 {
	h := xxhash.New()
	for _, r := range s.records {
		_, _ = h.WriteString(r.Key.Canonical())
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(r.Path)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// match returns the ascending indices of records whose key is a superset of selection.
func (s *Store) match(selection Key) []int {
	if selection.IsZero() {
		ids := make([]int, len(s.records))
		for i := range ids {
			ids[i] = i
		}
		return ids
	}

	lists := make([][]int, 0, selection.Len())
	for _, a := range selection.pairs {
		list, ok := s.postings[canonicalAssignment(a)]
		if !ok {
			return nil
		}
		lists = append(lists, list)
	}
	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	ids := lists[0]
	for _, list := range lists[1:] {
		ids = intersect(ids, list)
		if len(ids) == 0 {
			return nil
		}
	}
	return ids
}

// subset builds a derived Store from the given record indices.
func (s *Store) subset(ids []int) *Store {
	records := make([]Record, len(ids))
	for i, id := range ids {
		records[i] = s.records[id]
	}
	return newStore(records)
}

// intersect merges two ascending lists.
func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
