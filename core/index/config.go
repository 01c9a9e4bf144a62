package index

// Config holds configuration for the in-memory index.
type Config struct {
	// MaxEntries bounds the options memo table. Zero keeps it unbounded.
	MaxEntries int `mapstructure:"max_entries" default:"0" validate:"gte=0"`
}
