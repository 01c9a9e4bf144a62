package scan

import (
	"context"
	"fmt"
	"regexp"

	"pscan/core/facet"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithReporter forwards every notice to r as it is raised.
func WithReporter(r facet.Reporter) Option {
	return func(s *Scanner) {
		s.report = r
	}
}

type group struct {
	name  string
	index int
}

// Scanner extracts records from the paths of a Source.
// A Scanner is safe for concurrent use as long as its Source is.
type Scanner struct {
	pattern *regexp.Regexp
	groups  []group
	source  Source
	report  facet.Reporter
	notices []facet.Notice
}

// Result is the outcome of one scan.
type Result struct {
	// Store holds one record per distinct key.
	Store *facet.Store
	// Notices lists the conditions raised while scanning, in order.
	Notices []facet.Notice
	// Scanned counts the paths visited.
	Scanned int
	// Matched counts the paths that produced a record (before deduplication).
	Matched int
}

// Records returns the scanned records ordered by key.
func (r *Result) Records() []facet.Record {
	return r.Store.Records()
}

// New compiles pattern and returns a Scanner reading from source.
// Invalid syntax is an error. A pattern without named groups is accepted and reported
// as a MalformedPattern notice; scanning with it yields an empty Store.
func New(pattern string, source Source, opts ...Option) (*Scanner, []facet.Notice, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid pattern: %w", err)
	}

	s := &Scanner{pattern: re, source: source}
	for _, opt := range opts {
		opt(s)
	}

	for i, name := range re.SubexpNames() {
		if name != "" {
			s.groups = append(s.groups, group{name: name, index: i})
		}
	}

	if len(s.groups) == 0 {
		n := facet.Notice{
			Kind:    facet.NoticeMalformedPattern,
			Message: "pattern has no named groups; use (?P<name>...) to define parameters",
		}
		s.notices = append(s.notices, n)
		s.report.Report(n)
	}

	return s, s.Notices(), nil
}

// Pattern returns the source text of the compiled pattern.
func (s *Scanner) Pattern() string {
	return s.pattern.String()
}

// Params returns the named groups of the pattern in order of appearance.
func (s *Scanner) Params() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.name
	}
	return names
}

// Source returns the Source being scanned.
func (s *Scanner) Source() Source {
	return s.source
}

// Notices returns the notices raised at construction.
func (s *Scanner) Notices() []facet.Notice {
	out := make([]facet.Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

// Scan walks the Source and builds a Store from every matching path.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	res := &Result{}
	collect := func(n facet.Notice) {
		res.Notices = append(res.Notices, n)
	}
	b := facet.NewBuilder(facet.Tee(s.report, collect))

	warnedEmpty := false
	err := s.source.Walk(ctx, func(path string) error {
		res.Scanned++

		key, ok := s.Extract(path)
		if !ok {
			return nil
		}
		if key.IsZero() {
			if !warnedEmpty {
				n := facet.Notice{
					Kind:    facet.NoticeEmptyCaptureSet,
					Message: "pattern matched but produced no named assignments; skipping",
					Path:    path,
				}
				collect(n)
				s.report.Report(n)
				warnedEmpty = true
			}
			return nil
		}

		res.Matched++
		b.Insert(key, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.source.Name(), err)
	}

	res.Store = b.Build()
	return res, nil
}

// Extract matches path against the pattern. The search is unanchored.
// Named groups that did not take part in the match are left out of the key;
// groups that matched the empty string are kept.
func (s *Scanner) Extract(path string) (facet.Key, bool) {
	loc := s.pattern.FindStringSubmatchIndex(path)
	if loc == nil {
		return facet.Key{}, false
	}

	pairs := make([]facet.Assignment, 0, len(s.groups))
	for _, g := range s.groups {
		start, end := loc[2*g.index], loc[2*g.index+1]
		if start < 0 {
			continue
		}
		pairs = append(pairs, facet.Assignment{Name: g.name, Value: path[start:end]})
	}
	return facet.KeyOf(pairs...), true
}
