package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/census-cli/internal/render"
	"github.com/KaramelBytes/census-cli/internal/report"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List the charts 'analyze' renders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := render.DefaultCatalogOptions()
		if cfg != nil {
			opt = catalogOptions(cfg)
		}
		report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor).Catalog(render.Catalog(opt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}
