// Package config provides configuration management for pscan.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live in `default:` struct tags next to each field and
// are registered by reflection, so every key can be overridden from the environment
// (SCAN_PATTERN, SERVER_PORT, CACHE_MAX_ENTRIES, ...). Command line flags are applied
// on top by the cmd package.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: listen address, API key, browser launch
//   - Scan: pattern, source kind, root or prefix, exclude globs, watch mode
//   - Storage: S3/MinIO credentials and bucket for the bucket source
//   - Database: catalog connection, table and column for the catalog source
//   - Cache: memo table bound
//   - Log: logging level and format
//
// Validate checks the `validate:` tags with go-playground/validator.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
