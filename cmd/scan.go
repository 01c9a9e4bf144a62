package cmd

import (
	"pscan/core/facet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the records extracted from the source",
	Long: `Scans the configured source once and prints every record with its parameter values,
followed by the notices raised while scanning (duplicate keys, empty capture sets,
patterns without named groups).`,
	Args: cobra.NoArgs,
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

		// Notices are part of the output here, so they are not logged as well.
		sc, err := buildScanner(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}

		res, err := sc.Scan(cmd.Context())
		if err != nil {
			return err
		}
		logg.Debug("Scan finished", zap.Int("scanned", res.Scanned), zap.Int("matched", res.Matched))

		notices := append(append([]facet.Notice{}, sc.Notices()...), res.Notices...)
		return renderScan(cmd.OutOrStdout(), flags.output, ScanOutput{
			Params:  res.Store.Params(),
			Records: res.Records(),
			Notices: notices,
		})
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
