package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/census-cli/internal/pipeline"
	"github.com/KaramelBytes/census-cli/internal/report"
)

var (
	anaFlags      loadFlags
	anaOutputPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a census workbook (XLSX/CSV/TSV), print a summary and render charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		opt, err := anaFlags.options(cmd, c, args[0])
		if err != nil {
			return err
		}
		opt.MarkdownOut = anaOutputPath
		opt.Printer = report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor)

		res, err := pipeline.Run(opt)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
		}
		if len(res.ChartErrors) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %d of %d charts failed\n", len(res.ChartErrors), len(res.ChartErrors)+len(res.Charts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the summary (Markdown)")
}
