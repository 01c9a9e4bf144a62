package cmd

import (
	"pscan/core/facet"
	"pscan/core/utils"

	"github.com/spf13/cobra"
)

var narrowFlag bool

// optionsCmd represents the options command
var optionsCmd = &cobra.Command{
	Use:   "options [name=value ...]",
	Short: "List the values reachable from a selection",
	Long: `Prints the values of every parameter that are still reachable from the given picks.
By default each parameter is computed with every other pick fixed, which is what a
browser shows next to each parameter. With --narrow all picks are applied at once.`,
	Example: `  pscan options -r 'a_(?P<a>\d+)/b_(?P<b>\w+)' a=1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selection, err := utils.ParsePairs(args)
		if err != nil {
			return err
		}
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

		key := facet.NewKey(selection)
		var opts facet.Options
		if narrowFlag {
			opts = idx.Engine().Options(key)
		} else {
			opts = idx.Engine().CrossOptions(key)
		}
		return renderOptions(cmd.OutOrStdout(), flags.output, opts)
	},
}

func init() {
	optionsCmd.Flags().BoolVar(&narrowFlag, "narrow", false, "apply every pick at once instead of cross-filtering")
	RootCmd.AddCommand(optionsCmd)
}
