package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/census-cli/internal/config"
	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set census configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "skip_rows: %d\n", cfg.SkipRows)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "decimal: %q\n", cfg.Decimal)
		if cfg.Thousands != "" {
			fmt.Fprintf(out, "thousands: %q\n", cfg.Thousands)
		}
		fmt.Fprintf(out, "charts_dir: %s\n", cfg.ChartsDir)
		fmt.Fprintf(out, "render_charts: %t\n", cfg.RenderCharts)
		fmt.Fprintf(out, "chart_width_in: %g\n", cfg.ChartWidthIn)
		fmt.Fprintf(out, "chart_height_in: %g\n", cfg.ChartHeightIn)
		fmt.Fprintf(out, "hist_bins: %d\n", cfg.HistBins)
		fmt.Fprintf(out, "line_records: %d\n", cfg.LineRecords)
		fmt.Fprintf(out, "top_areas: %d\n", cfg.TopAreas)
		fmt.Fprintf(out, "head_rows: %d\n", cfg.HeadRows)
		fmt.Fprintf(out, "normalized_head_rows: %d\n", cfg.NormalizedHeadRows)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "skip_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for skip_rows: %v", val)
			}
			cfg.SkipRows = i
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid 1-based index for sheet_index: %v", val)
			}
			cfg.SheetIndex = i
		case "decimal", "thousands":
			if _, err := dataset.ParseSeparator(val); err != nil {
				return err
			}
			if key == "decimal" {
				cfg.Decimal = val
			} else {
				cfg.Thousands = val
			}
		case "charts_dir":
			cfg.ChartsDir = val
		case "render_charts":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for render_charts: %w", err)
			}
			cfg.RenderCharts = b
		case "chart_width_in", "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid size for %s: %v", key, val)
			}
			if key == "chart_width_in" {
				cfg.ChartWidthIn = f
			} else {
				cfg.ChartHeightIn = f
			}
		case "hist_bins", "line_records", "top_areas", "head_rows", "normalized_head_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "hist_bins":
				cfg.HistBins = i
			case "line_records":
				cfg.LineRecords = i
			case "top_areas":
				cfg.TopAreas = i
			case "head_rows":
				cfg.HeadRows = i
			case "normalized_head_rows":
				cfg.NormalizedHeadRows = i
			}
		case "log_level":
			var lvl zapcore.Level
			if err := lvl.UnmarshalText([]byte(val)); err != nil {
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
			cfg.LogLevel = lvl.String()
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
