package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Loader
	SkipRows   int    `mapstructure:"skip_rows" yaml:"skip_rows"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	Decimal    string `mapstructure:"decimal" yaml:"decimal"`
	Thousands  string `mapstructure:"thousands" yaml:"thousands"`

	// Charts
	ChartsDir     string  `mapstructure:"charts_dir" yaml:"charts_dir"`
	RenderCharts  bool    `mapstructure:"render_charts" yaml:"render_charts"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
	HistBins      int     `mapstructure:"hist_bins" yaml:"hist_bins"`
	LineRecords   int     `mapstructure:"line_records" yaml:"line_records"`

	// Summary output
	TopAreas           int `mapstructure:"top_areas" yaml:"top_areas"`
	HeadRows           int `mapstructure:"head_rows" yaml:"head_rows"`
	NormalizedHeadRows int `mapstructure:"normalized_head_rows" yaml:"normalized_head_rows"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.census/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CENSUS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("skip_rows", 3)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("decimal", ".")
	v.SetDefault("thousands", "")
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("render_charts", true)
	v.SetDefault("chart_width_in", 10.0)
	v.SetDefault("chart_height_in", 6.0)
	v.SetDefault("hist_bins", 30)
	v.SetDefault("line_records", 20)
	v.SetDefault("top_areas", 20)
	v.SetDefault("head_rows", 5)
	v.SetDefault("normalized_head_rows", 10)
	v.SetDefault("log_level", "warn")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SkipRows < 0 {
		return nil, fmt.Errorf("invalid skip_rows: %d", c.SkipRows)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".census"), nil
}
