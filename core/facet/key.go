package facet

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Assignment binds one parameter name to one value.
type Assignment struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Key is an order-independent set of assignments with unique names.
// The zero Key is the empty selection and matches every Record.
type Key struct {
	pairs []Assignment // sorted by Name
	canon string
}

// NewKey builds a Key from a name -> value map.
func NewKey(m map[string]string) Key {
	pairs := make([]Assignment, 0, len(m))
	for name, value := range m {
		pairs = append(pairs, Assignment{Name: name, Value: value})
	}
	return KeyOf(pairs...)
}

// KeyOf builds a Key from a list of assignments. When a name repeats, the last
// assignment for that name wins.
func KeyOf(pairs ...Assignment) Key {
	if len(pairs) == 0 {
		return Key{}
	}

	byName := make(map[string]string, len(pairs))
	for _, p := range pairs {
		byName[p.Name] = p.Value
	}

	sorted := make([]Assignment, 0, len(byName))
	for name, value := range byName {
		sorted = append(sorted, Assignment{Name: name, Value: value})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	for _, p := range sorted {
		writeAssignment(&b, p)
	}

	return Key{pairs: sorted, canon: b.String()}
}

// writeAssignment appends the length-prefixed encoding of one assignment.
// Length prefixes keep "a=b,c" and "a=b" + "c=" from colliding.
func writeAssignment(b *strings.Builder, p Assignment) {
	b.WriteString(strconv.Itoa(len(p.Name)))
	b.WriteByte(':')
	b.WriteString(p.Name)
	b.WriteString(strconv.Itoa(len(p.Value)))
	b.WriteByte(':')
	b.WriteString(p.Value)
}

// canonicalAssignment returns the encoding of a single assignment, used as the
// posting list key.
func canonicalAssignment(p Assignment) string {
	var b strings.Builder
	writeAssignment(&b, p)
	return b.String()
}

// Canonical returns the order-independent encoding of the Key.
// Two Keys are equal iff their canonical forms are equal.
func (k Key) Canonical() string {
	return k.canon
}

// Len returns the number of assignments.
func (k Key) Len() int {
	return len(k.pairs)
}

// IsZero reports whether the Key has no assignments.
func (k Key) IsZero() bool {
	return len(k.pairs) == 0
}

// Equal reports whether both Keys hold the same assignments.
func (k Key) Equal(other Key) bool {
	return k.canon == other.canon
}

// Get returns the value bound to name.
func (k Key) Get(name string) (string, bool) {
	i := sort.Search(len(k.pairs), func(i int) bool { return k.pairs[i].Name >= name })
	if i < len(k.pairs) && k.pairs[i].Name == name {
		return k.pairs[i].Value, true
	}
	return "", false
}

// Assignments returns a copy of the assignments sorted by name.
func (k Key) Assignments() []Assignment {
	out := make([]Assignment, len(k.pairs))
	copy(out, k.pairs)
	return out
}

// Names returns the parameter names in sorted order.
func (k Key) Names() []string {
	names := make([]string, len(k.pairs))
	for i, p := range k.pairs {
		names[i] = p.Name
	}
	return names
}

// Map returns the Key as a name -> value map.
func (k Key) Map() map[string]string {
	m := make(map[string]string, len(k.pairs))
	for _, p := range k.pairs {
		m[p.Name] = p.Value
	}
	return m
}

// Without returns a copy of the Key with name removed.
func (k Key) Without(name string) Key {
	if _, ok := k.Get(name); !ok {
		return k
	}
	rest := make([]Assignment, 0, len(k.pairs)-1)
	for _, p := range k.pairs {
		if p.Name != name {
			rest = append(rest, p)
		}
	}
	return KeyOf(rest...)
}

// SubsetOf reports whether every assignment of k is present in other.
func (k Key) SubsetOf(other Key) bool {
	if len(k.pairs) > len(other.pairs) {
		return false
	}
	for _, p := range k.pairs {
		v, ok := other.Get(p.Name)
		if !ok || v != p.Value {
			return false
		}
	}
	return true
}

// String renders the Key as {name: value, ...}.
func (k Key) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range k.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the Key as a JSON object.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Map())
}

// UnmarshalJSON decodes a JSON object of string values.
func (k *Key) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*k = NewKey(m)
	return nil
}

// MarshalYAML encodes the Key as a mapping.
func (k Key) MarshalYAML() (any, error) {
	return k.Map(), nil
}
