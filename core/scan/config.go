package scan

import "time"

// Source kinds accepted by Config.Source.
const (
	SourceFile    = "file"
	SourceBucket  = "bucket"
	SourceCatalog = "catalog"
)

// Config holds configuration for scanning.
type Config struct {
	// Pattern is the regular expression with named groups applied to every path.
	Pattern string `mapstructure:"pattern" default:"" validate:"required"`
	// Root is the directory walked by the file source.
	Root string `mapstructure:"root" default:"."`
	// Prefix restricts the bucket source to keys with this prefix.
	Prefix string `mapstructure:"prefix" default:""`
	// Source selects where paths come from (file, bucket, catalog).
	Source string `mapstructure:"source" default:"file" validate:"oneof=file bucket catalog"`
	// Exclude lists doublestar globs skipped by the file source, comma separated in env.
	Exclude []string `mapstructure:"exclude" default:""`
	// Watch enables fsnotify driven rescans for the file source.
	Watch bool `mapstructure:"watch" default:"false"`
	// DebounceMs is the quiet period before a watched change triggers a rescan.
	DebounceMs int `mapstructure:"debounce_ms" default:"500" validate:"gte=0"`
}

// Debounce returns DebounceMs as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
