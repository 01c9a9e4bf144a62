package facet

import "sync"

// NoticeKind classifies a non-fatal condition.
type NoticeKind string

const (
	// NoticeDuplicateKey is raised when an insert replaces an existing Record.
	NoticeDuplicateKey NoticeKind = "duplicate_key"
	// NoticeEmptyCaptureSet is raised when a path matched the pattern but produced
	// no named assignments. The match is discarded.
	NoticeEmptyCaptureSet NoticeKind = "empty_capture_set"
	// NoticeMalformedPattern is raised when the pattern defines no named groups.
	NoticeMalformedPattern NoticeKind = "malformed_pattern"
)

// Notice describes one non-fatal condition.
type Notice struct {
	// Kind identifies the condition.
	Kind NoticeKind `json:"kind" yaml:"kind"`

	// Message is a human readable description.
	Message string `json:"message" yaml:"message"`

	// Key is the colliding key for DuplicateKey notices.
	Key Key `json:"key,omitzero" yaml:"key,omitempty"`

	// Path is the path that triggered the notice (the winning path for DuplicateKey).
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Discarded is the path that was replaced, for DuplicateKey notices.
	Discarded string `json:"discarded,omitempty" yaml:"discarded,omitempty"`
}

// Reporter receives notices as they happen. A nil Reporter discards them.
type Reporter func(Notice)

// Report forwards n to the reporter if it is set.
func (r Reporter) Report(n Notice) {
	if r != nil {
		r(n)
	}
}

// Tee returns a Reporter that forwards every notice to all non-nil reporters.
func Tee(reporters ...Reporter) Reporter {
	return func(n Notice) {
		for _, r := range reporters {
			r.Report(n)
		}
	}
}

// Collector accumulates notices. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Report appends n.
func (c *Collector) Report(n Notice) {
	c.mu.Lock()
	c.notices = append(c.notices, n)
	c.mu.Unlock()
}

// Notices returns a copy of the collected notices.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Count returns how many notices of the given kind were collected.
func (c *Collector) Count(kind NoticeKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, notice := range c.notices {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}
