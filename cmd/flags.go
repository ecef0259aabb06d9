package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/census-cli/internal/config"
	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/pipeline"
	"github.com/KaramelBytes/census-cli/internal/render"
)

// loadFlags are the input and chart flags shared by analyze and analyze-batch.
type loadFlags struct {
	skipRows   int
	sheetName  string
	sheetIndex int
	delimiter  string
	decimal    string
	thousands  string
	chartsDir  string
	noCharts   bool
	only       []string
	topAreas   int
	headRows   int
}

func (lf *loadFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&lf.skipRows, "skip-rows", dataset.DefaultSkipRows, "title rows above the header row")
	f.StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	f.IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	f.StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	f.StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (default '.')")
	f.StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (default none)")
	f.StringVar(&lf.chartsDir, "charts-dir", "", "directory for rendered charts (a run-id subdirectory is created)")
	f.BoolVar(&lf.noCharts, "no-charts", false, "skip chart rendering")
	f.StringSliceVar(&lf.only, "only", nil, "render only the named charts (see 'census charts')")
	f.IntVar(&lf.topAreas, "top-areas", 0, "number of areas in the top-areas table and chart")
	f.IntVar(&lf.headRows, "head-rows", 0, "rows in the Total_Persons_in_thousands preview")
}

// options merges configuration and explicitly set flags into pipeline options.
// Precedence: flags > env > config file > defaults.
func (lf *loadFlags) options(cmd *cobra.Command, c *cfgpkg.Global, path string) (pipeline.Options, error) {
	opt := pipeline.DefaultOptions(path)
	f := cmd.Flags()

	opt.Load.SkipRows = c.SkipRows
	if f.Changed("skip-rows") {
		opt.Load.SkipRows = lf.skipRows
	}
	if opt.Load.SkipRows < 0 {
		return opt, fmt.Errorf("invalid --skip-rows: %d", opt.Load.SkipRows)
	}
	opt.Load.SheetName = c.SheetName
	if f.Changed("sheet-name") {
		opt.Load.SheetName = lf.sheetName
	}
	opt.Load.SheetIndex = c.SheetIndex
	if f.Changed("sheet-index") {
		opt.Load.SheetIndex = lf.sheetIndex
	}
	switch lf.delimiter {
	case "":
	case ",":
		opt.Load.Delimiter = ','
	case "\t", "tab":
		opt.Load.Delimiter = '\t'
	case ";":
		opt.Load.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", lf.delimiter)
	}

	decimal, thousands := c.Decimal, c.Thousands
	if f.Changed("decimal") {
		decimal = lf.decimal
	}
	if f.Changed("thousands") {
		thousands = lf.thousands
	}
	var err error
	if opt.Number.Decimal, err = dataset.ParseSeparator(strings.TrimSpace(decimal)); err != nil {
		return opt, fmt.Errorf("invalid decimal separator: %w", err)
	}
	if opt.Number.Thousands, err = dataset.ParseSeparator(thousands); err != nil {
		return opt, fmt.Errorf("invalid thousands separator: %w", err)
	}
	if opt.Number.Decimal != 0 && opt.Number.Decimal == opt.Number.Thousands {
		return opt, fmt.Errorf("decimal and thousands separators must differ")
	}

	opt.Summary.TopAreas = positive(c.TopAreas, opt.Summary.TopAreas)
	opt.Summary.HeadRows = positive(c.HeadRows, opt.Summary.HeadRows)
	opt.Summary.NormalizedHeadRows = positive(c.NormalizedHeadRows, opt.Summary.NormalizedHeadRows)
	if lf.topAreas > 0 {
		opt.Summary.TopAreas = lf.topAreas
	}
	if lf.headRows > 0 {
		opt.Summary.HeadRows = lf.headRows
	}

	opt.RenderCharts = c.RenderCharts && !lf.noCharts
	opt.Only = lf.only
	opt.ChartsDir = c.ChartsDir
	if lf.chartsDir != "" {
		opt.ChartsDir = lf.chartsDir
	}
	opt.ChartWidthIn, opt.ChartHeightIn = c.ChartWidthIn, c.ChartHeightIn
	opt.Catalog = catalogOptions(c)
	opt.Catalog.TopAreas = opt.Summary.TopAreas
	opt.Logger = logger
	return opt, nil
}

func catalogOptions(c *cfgpkg.Global) render.CatalogOptions {
	def := render.DefaultCatalogOptions()
	return render.CatalogOptions{
		HistBins:    positive(c.HistBins, def.HistBins),
		LineRecords: positive(c.LineRecords, def.LineRecords),
		TopAreas:    positive(c.TopAreas, def.TopAreas),
	}
}

func positive(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
