package facet

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(pairs ...string) Key {
	as := make([]Assignment, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		as = append(as, Assignment{Name: pairs[i], Value: pairs[i+1]})
	}
	return KeyOf(as...)
}

// seedRecords is the reference data set: {a:1,b:x}, {a:1,b:y}, {a:2,b:x}.
func seedRecords() []Record {
	return []Record{
		{Key: key("a", "1", "b", "x"), Path: "/p1"},
		{Key: key("a", "1", "b", "y"), Path: "/p2"},
		{Key: key("a", "2", "b", "x"), Path: "/p3"},
	}
}

func TestBuilder_InsertOverwrites(t *testing.T) {
	var collected Collector
	b := NewBuilder(collected.Report)

	assert.False(t, b.Insert(key("a", "1", "b", "x"), "/p1"))
	assert.True(t, b.Insert(key("b", "x", "a", "1"), "/p1-new"))

	store := b.Build()
	assert.Equal(t, 1, store.Len())

	rec, ok := store.Get(key("a", "1", "b", "x"))
	require.True(t, ok)
	assert.Equal(t, "/p1-new", rec.Path)

	notices := b.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeDuplicateKey, notices[0].Kind)
	assert.Equal(t, "/p1", notices[0].Discarded)
	assert.Equal(t, "/p1-new", notices[0].Path)
	assert.True(t, notices[0].Key.Equal(key("a", "1", "b", "x")))
	assert.Equal(t, 1, collected.Count(NoticeDuplicateKey))
}

func TestBuild_DistinctUnicodeForms(t *testing.T) {
	store, notices := Build([]Record{
		{Key: key("name", "caf\u00e9"), Path: "/nfc"},
		{Key: key("name", "cafe\u0301"), Path: "/nfd"},
	}, nil)

	assert.Equal(t, 2, store.Len())
	assert.Empty(t, notices)

	res := store.Lookup(key("name", "cafe\u0301"))
	require.Equal(t, Unique, res.Kind)
	assert.Equal(t, "/nfd", res.Path)
}

func TestBuilder_BuildIsSnapshot(t *testing.T) {
	b := NewBuilder(nil)
	b.Insert(key("a", "1"), "/p1")
	store := b.Build()

	b.Insert(key("a", "2"), "/p2")

	assert.Equal(t, 1, store.Len())
	assert.False(t, store.Contains(key("a", "2")))
	assert.True(t, b.Contains(key("a", "2")))
}

func TestStore_Contains(t *testing.T) {
	store, notices := Build(seedRecords(), nil)
	assert.Empty(t, notices)

	assert.True(t, store.Contains(key("a", "1", "b", "x")))
	// Exact match only: a subset of a stored key is not contained.
	assert.False(t, store.Contains(key("a", "1")))
	assert.False(t, store.Contains(key("a", "3", "b", "x")))
}

func TestStore_KeysAndParams(t *testing.T) {
	store, _ := Build(seedRecords(), nil)

	assert.Len(t, store.Keys(), 3)
	assert.Equal(t, []string{"a", "b"}, store.Params())
	assert.Equal(t, []string{"/p1", "/p2", "/p3"}, pathsOf(store.Records()))
}

func TestStore_Lookup(t *testing.T) {
	store, _ := Build(seedRecords(), nil)

	tests := []struct {
		name      string
		selection Key
		kind      Kind
		count     int
		paths     []string
	}{
		{"unique", key("a", "1", "b", "x"), Unique, 1, []string{"/p1"}},
		{"ambiguous", key("a", "1"), Ambiguous, 2, []string{"/p1", "/p2"}},
		{"ambiguous on other param", key("b", "x"), Ambiguous, 2, []string{"/p1", "/p3"}},
		{"narrowed to unique", key("a", "2"), Unique, 1, []string{"/p3"}},
		{"unknown value", key("a", "3"), NotFound, 0, nil},
		{"unknown param", key("c", "1"), NotFound, 0, nil},
		{"impossible combination", key("a", "2", "b", "y"), NotFound, 0, nil},
		{"empty selection", Key{}, Ambiguous, 3, []string{"/p1", "/p2", "/p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := store.Lookup(tt.selection)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.count, res.Count())
			assert.Equal(t, tt.paths, res.Paths())
		})
	}
}

func TestStore_LookupAmbiguousNarrows(t *testing.T) {
	store, _ := Build(seedRecords(), nil)

	res := store.Lookup(key("a", "1"))
	require.Equal(t, Ambiguous, res.Kind)

	// The derived store only knows the matching records.
	sub := res.Matches
	assert.Equal(t, 2, sub.Len())
	assert.False(t, sub.Contains(key("a", "2", "b", "x")))

	next := sub.Lookup(key("b", "y"))
	assert.Equal(t, Unique, next.Kind)
	assert.Equal(t, "/p2", next.Path)
}

func TestStore_HeterogeneousKeys(t *testing.T) {
	store, _ := Build([]Record{
		{Key: key("a", "1"), Path: "/only-a"},
		{Key: key("a", "1", "b", "x"), Path: "/a-and-b"},
		{Key: key("c", "z"), Path: "/only-c"},
	}, nil)

	assert.Equal(t, []string{"a", "b", "c"}, store.Params())

	res := store.Lookup(key("a", "1"))
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Equal(t, []string{"/a-and-b", "/only-a"}, sortedPaths(res.Paths()))

	res = store.Lookup(key("b", "x"))
	assert.Equal(t, Unique, res.Kind)
	assert.Equal(t, "/a-and-b", res.Path)
}

// TestStore_NarrowingMonotonic checks that adding assignments never grows the match set
// and that the posting-list lookup agrees with a brute-force subset scan.
func TestStore_NarrowingMonotonic(t *testing.T) {
	var records []Record
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 2; k++ {
				records = append(records, Record{
					Key:  key("x", fmt.Sprint(i), "y", fmt.Sprint(j), "z", fmt.Sprint(k)),
					Path: fmt.Sprintf("/%d/%d/%d", i, j, k),
				})
			}
		}
	}
	store, _ := Build(records, nil)

	selections := []Key{
		{},
		key("x", "1"),
		key("x", "1", "y", "2"),
		key("x", "1", "y", "2", "z", "0"),
	}

	var prev map[string]bool
	for _, sel := range selections {
		got := map[string]bool{}
		for _, p := range store.Lookup(sel).Paths() {
			got[p] = true
		}

		brute := map[string]bool{}
		for _, r := range records {
			if sel.SubsetOf(r.Key) {
				brute[r.Path] = true
			}
		}
		assert.Equal(t, brute, got, "selection %s", sel)

		if prev != nil {
			for p := range got {
				assert.True(t, prev[p], "%s matched %s but its parent selection did not", sel, p)
			}
		}
		prev = got
	}
}

func TestStore_Fingerprint(t *testing.T) {
	a, _ := Build(seedRecords(), nil)

	reversed := seedRecords()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	b, _ := Build(reversed, nil)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	changed := seedRecords()
	changed[0].Path = "/p1-new"
	c, _ := Build(changed, nil)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	assert.NotEqual(t, a.Fingerprint(), Empty().Fingerprint())
}

func pathsOf(records []Record) []string {
	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = r.Path
	}
	return sortedPaths(paths)
}

func sortedPaths(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}
