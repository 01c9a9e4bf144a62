package facet

// Kind is the outcome of a lookup.
type Kind int

const (
	// NotFound means no Record matches the selection.
	NotFound Kind = iota
	// Unique means exactly one Record matches.
	Unique
	// Ambiguous means more than one Record matches.
	Ambiguous
)

// String returns the lowercase name used in JSON responses.
func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Result is the tagged outcome of Store.Lookup.
//
// Exactly one variant is populated:
//   - Unique: Path and Record are set.
//   - Ambiguous: Matches holds the matching records as a derived Store.
//   - NotFound: nothing is set.
type Result struct {
	Kind    Kind
	Path    string
	Record  Record
	Matches *Store
}

// Count returns the number of matching records.
func (r Result) Count() int {
	switch r.Kind {
	case Unique:
		return 1
	case Ambiguous:
		return r.Matches.Len()
	default:
		return 0
	}
}

// Paths returns the paths of all matching records.
func (r Result) Paths() []string {
	switch r.Kind {
	case Unique:
		return []string{r.Path}
	case Ambiguous:
		records := r.Matches.records
		paths := make([]string, len(records))
		for i, rec := range records {
			paths[i] = rec.Path
		}
		return paths
	default:
		return nil
	}
}
