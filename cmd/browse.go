package cmd

import (
	"pscan/feature/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the indexed files in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logg, err := newLogger(cfg, true)
		if err != nil {
			return err
		}
		defer logg.Sync()

		// The terminal belongs to the UI once it starts, so the index logs nothing.
		// Rescan errors show in the footer instead.
		idx, report, err := buildIndex(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}
		for _, n := range report.Notices {
			logg.Warn(n.Message, zap.String("kind", string(n.Kind)), zap.String("path", n.Path))
		}

		return tui.Run(cmd.Context(), idx, zap.NewNop())
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
}
