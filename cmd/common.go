package cmd

import (
	"context"
	"fmt"

	"pscan/core/config"
	"pscan/core/database"
	"pscan/core/facet"
	"pscan/core/index"
	"pscan/core/logger"
	"pscan/core/metrics"
	"pscan/core/scan"
	"pscan/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	pattern string
	root    string
	source  string
	exclude []string
	output  string
	envDir  string
}

var flags globalFlags

// loadConfig loads the environment configuration, applies explicitly set flags and validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.envDir)
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("pattern") {
		cfg.Scan.Pattern = flags.pattern
	}
	if pf.Changed("root") {
		cfg.Scan.Root = flags.root
	}
	if pf.Changed("source") {
		cfg.Scan.Source = flags.source
	}
	if pf.Changed("exclude") {
		cfg.Scan.Exclude = flags.exclude
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkOutput(flags.output); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSource creates the path source selected by the scan configuration.
func buildSource(ctx context.Context, cfg *config.Config, logg *zap.Logger) (scan.Source, error) {
	switch cfg.Scan.Source {
	case scan.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &scan.BucketSource{
			Client: client,
			Bucket: cfg.Storage.Bucket,
			Prefix: cfg.Scan.Prefix,
		}, nil

	case scan.SourceCatalog:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		logg.Debug("Connected to catalog database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("table", cfg.Database.Table),
		)
		return &scan.CatalogSource{
			DB:     db.WithContext(ctx),
			Table:  cfg.Database.Table,
			Column: cfg.Database.Column,
		}, nil

	case scan.SourceFile, "":
		return &scan.FileSource{
			Root:    cfg.Scan.Root,
			Exclude: cfg.Scan.Exclude,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Scan.Source)
	}
}

// buildScanner creates the scanner for the configured pattern and source.
// Notices are logged as they are raised.
func buildScanner(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*scan.Scanner, error) {
	src, err := buildSource(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}
	sc, _, err := scan.New(cfg.Scan.Pattern, src, scan.WithReporter(logger.NoticeReporter(logg)))
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// buildIndex creates an index over the configured source and runs the first scan.
func buildIndex(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*index.Index, *index.Report, error) {
	sc, err := buildScanner(ctx, cfg, logg)
	if err != nil {
		return nil, nil, err
	}

	engine := facet.NewEngine(nil,
		facet.WithMaxEntries(cfg.Cache.MaxEntries),
		facet.WithObserver(metrics.Engine{}),
	)
	idx := index.New(engine, sc, logg)

	report, err := idx.Rescan(ctx)
	if err != nil {
		return nil, nil, err
	}
	metrics.ObserveRescan(report)
	return idx, report, nil
}

// newLogger creates the application logger. Query commands log to stderr at warn level
// unless debug logging is configured, so stdout only carries the rendered output.
func newLogger(cfg *config.Config, quiet bool) (*zap.Logger, error) {
	lc := cfg.Log
	if quiet && lc.Level != "debug" {
		lc.Level = "warn"
	}
	return logger.New(&lc)
}
