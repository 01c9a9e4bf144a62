package cmd

import (
	"pscan/core/facet"
	"pscan/core/utils"

	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:     "resolve name=value ...",
	Short:   "Resolve a selection to a file",
	Long:    `Looks up the records matching the given picks and reports a unique path, the ambiguous matches, or that nothing matches.`,
	Example: `  pscan resolve -r 'a_(?P<a>\d+)/b_(?P<b>\w+)' a=1 b=x`,
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

		res := idx.Engine().Resolve(facet.NewKey(selection))
		return renderResolve(cmd.OutOrStdout(), flags.output, NewResolveOutput(res))
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)
}
