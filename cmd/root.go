package cmd

import (
	"fmt"
	"os"

	"pscan/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pscan",
	Short: "Parametric file browser",
	Long: `pscan indexes files whose paths encode parameters, extracted with a regular
expression of named groups, and lets you browse them by picking a value per parameter.
Paths can come from a directory, an object storage bucket or a database catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps for a CLI.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	f := RootCmd.PersistentFlags()
	f.StringVarP(&flags.pattern, "pattern", "r", "", "regex with named groups matched against every path (overrides SCAN_PATTERN)")
	f.StringVarP(&flags.root, "root", "b", "", "directory scanned by the file source (overrides SCAN_ROOT)")
	f.StringVarP(&flags.source, "source", "s", "", "path source: file, bucket or catalog (overrides SCAN_SOURCE)")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "doublestar globs skipped by the file source")
	f.StringVarP(&flags.output, "output", "o", outputTable, "output format: table, json or yaml")
	f.StringVar(&flags.envDir, "env-dir", ".", "directory holding the .env file")
}
