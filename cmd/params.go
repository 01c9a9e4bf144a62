package cmd

import (
	"github.com/spf13/cobra"
)

// paramsCmd represents the params command
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the parameter names found in the source",
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

		idx, _, err := buildIndex(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}
		return renderParams(cmd.OutOrStdout(), flags.output, ParamsOutput{Params: idx.Engine().AllParams()})
	},
}

func init() {
	RootCmd.AddCommand(paramsCmd)
}
