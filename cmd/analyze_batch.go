package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/census-cli/internal/parser"
	"github.com/KaramelBytes/census-cli/internal/pipeline"
	"github.com/KaramelBytes/census-cli/internal/report"
	"github.com/KaramelBytes/census-cli/internal/utils"
)

var (
	abFlags  loadFlags
	abOutDir string
	abQuiet  bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple census workbooks with progress, writing one Markdown summary per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				if !parser.Supported(m) {
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: skipping %s: unsupported format\n", m)
					continue
				}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		out := cmd.OutOrStdout()
		if abQuiet {
			out = io.Discard
		}
		total := len(files)
		for i, path := range files {
			fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			opt, err := abFlags.options(cmd, c, path)
			if err != nil {
				return err
			}
			if abOutDir != "" {
				opt.MarkdownOut = uniqueSummaryPath(abOutDir, path, opt.Load.SheetName)
			} else {
				opt.Printer = report.New(out, cmd.ErrOrStderr(), !noColor)
			}
			res, err := pipeline.Run(opt)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			if opt.MarkdownOut != "" {
				fmt.Fprintf(out, "✓ Wrote analysis to %s\n", opt.MarkdownOut)
			}
			if res.ChartsDir != "" && len(res.Charts) > 0 {
				fmt.Fprintf(out, "✓ %d charts in %s\n", len(res.Charts), res.ChartsDir)
			}
			for _, e := range res.ChartErrors {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning:", e)
			}
		}
		return nil
	},
}

// uniqueSummaryPath names the summary after the input file (and sheet), adding
// a numeric suffix instead of overwriting an existing summary.
func uniqueSummaryPath(dir, path, sheet string) string {
	base := filepath.Base(path)
	name := utils.SafeFileName(strings.TrimSuffix(base, filepath.Ext(base)))
	if sheet != "" {
		name += "__sheet-" + utils.SafeFileName(sheet)
	}
	out := filepath.Join(dir, name+".summary.md")
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d.summary.md", name, idx))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "write one Markdown summary per file here instead of printing")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
