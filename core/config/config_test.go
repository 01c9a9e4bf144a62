package config

import (
	"os"
	"path/filepath"
	"testing"

	"pscan/core/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8765", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, scan.SourceFile, cfg.Scan.Source)
	assert.Equal(t, ".", cfg.Scan.Root)
	assert.Equal(t, 500, cfg.Scan.DebounceMs)
	assert.Empty(t, cfg.Scan.Exclude)
	assert.Equal(t, 0, cfg.Cache.MaxEntries)
	assert.Equal(t, "files", cfg.Database.Table)
	assert.Equal(t, "path", cfg.Database.Column)
	assert.Equal(t, "info", cfg.Log.Level)

	// No pattern configured
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SCAN_PATTERN", `(?P<shape>\w+)\.png`)
	t.Setenv("SCAN_EXCLUDE", ".git/**,**/*.tmp")
	t.Setenv("SCAN_WATCH", "true")
	t.Setenv("CACHE_MAX_ENTRIES", "128")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, `(?P<shape>\w+)\.png`, cfg.Scan.Pattern)
	assert.Equal(t, []string{".git/**", "**/*.tmp"}, cfg.Scan.Exclude)
	assert.True(t, cfg.Scan.Watch)
	assert.Equal(t, 128, cfg.Cache.MaxEntries)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Registered so the values written by godotenv are restored afterwards
	t.Setenv("SCAN_ROOT", "")
	t.Setenv("SCAN_SOURCE", "")

	dir := t.TempDir()
	env := "SCAN_ROOT=renders\nSCAN_SOURCE=bucket\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "renders", cfg.Scan.Root)
	assert.Equal(t, scan.SourceBucket, cfg.Scan.Source)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		cfg.Scan.Pattern = `(?P<a>\d+)`
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Valid", func(*Config) {}, true},
		{"Unknown Source", func(c *Config) { c.Scan.Source = "ftp" }, false},
		{"Negative Cache", func(c *Config) { c.Cache.MaxEntries = -1 }, false},
		{"Bad Port", func(c *Config) { c.Server.Port = "http" }, false},
		{"Bad Log Level", func(c *Config) { c.Log.Level = "verbose" }, false},
		{"Bad Driver", func(c *Config) { c.Database.Driver = "oracle" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
