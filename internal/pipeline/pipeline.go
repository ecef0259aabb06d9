// Package pipeline runs the census analysis once: load, clean, categorize,
// summarize and render.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/census-cli/internal/analysis"
	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/render"
	"github.com/KaramelBytes/census-cli/internal/report"
	"github.com/KaramelBytes/census-cli/internal/utils"
)

// ErrNoValidRows is returned when cleaning leaves nothing to analyze.
var ErrNoValidRows = errors.New("no valid rows after cleaning")

// Options configures a run.
type Options struct {
	Path    string
	Load    dataset.LoadOptions
	Number  dataset.NumberFormat
	Summary analysis.SummaryOptions

	RenderCharts  bool
	Only          []string
	Catalog       render.CatalogOptions
	ChartsDir     string
	ChartWidthIn  float64
	ChartHeightIn float64
	// Sink overrides the default directory sink under ChartsDir.
	Sink render.Sink

	// MarkdownOut, when set, receives the Markdown summary.
	MarkdownOut string

	Logger  *zap.Logger
	Printer *report.Printer
}

// DefaultOptions returns options for a census workbook at path.
func DefaultOptions(path string) Options {
	return Options{
		Path:          path,
		Load:          dataset.DefaultLoadOptions(),
		Number:        dataset.NumberFormat{Decimal: '.'},
		Summary:       analysis.DefaultSummaryOptions(),
		RenderCharts:  true,
		Catalog:       render.DefaultCatalogOptions(),
		ChartsDir:     "charts",
		ChartWidthIn:  10,
		ChartHeightIn: 6,
	}
}

// Result carries every stage output of a run.
type Result struct {
	RunID     string
	Clean     dataset.CleanStats
	Coercions []*dataset.CoercionError
	Table     *dataset.Table
	Binning   *analysis.Binning
	Summary   *analysis.Summary

	ChartsDir   string
	Charts      []*render.Image
	ChartErrors []error
}

// Run executes the pipeline once. Load and schema failures abort the run;
// invalid rows and failed charts are counted and reported in the Result.
func Run(opt Options) (*Result, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	res := &Result{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", res.RunID))

	var specs []render.Spec
	if opt.RenderCharts {
		var err error
		specs, err = render.Select(render.Catalog(opt.Catalog), opt.Only)
		if err != nil {
			return nil, err
		}
	}

	log.Info("loading", zap.String("path", opt.Path), zap.Int("skip_rows", opt.Load.SkipRows))
	frame, err := dataset.Load(opt.Path, opt.Load)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded", zap.Int("rows", frame.Len()), zap.Strings("columns", frame.Columns()))

	cleaned, st, coerced := dataset.Clean(frame, dataset.CensusLayout(), opt.Number)
	res.Clean = st
	log.Info("cleaned",
		zap.Int("input_rows", st.InputRows),
		zap.Int("output_rows", st.OutputRows),
		zap.Int("empty_rows", st.EmptyRows),
		zap.Int("missing_key_rows", st.MissingKeyRows),
		zap.Int("coerced_cells", st.CoercedCells),
		zap.Strings("dropped_columns", st.DroppedColumns),
	)

	tbl, invalid, err := dataset.BuildTable(cleaned, opt.Number)
	if err != nil {
		return nil, err
	}
	res.Coercions = append(coerced, invalid...)
	for _, ce := range res.Coercions {
		log.Debug("row dropped", zap.Error(ce))
	}
	if len(invalid) > 0 {
		log.Warn("invalid rows dropped", zap.Int("count", len(invalid)))
	}
	if tbl.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", opt.Path, ErrNoValidRows)
	}

	categorized, bins, err := analysis.Categorize(tbl, analysis.PopularityLabels)
	if err != nil {
		return nil, err
	}
	res.Binning = bins
	log.Info("categorized", zap.Float64s("edges", bins.Edges), zap.Strings("collapsed", bins.Collapsed))

	derived, norm, err := analysis.Derive(categorized)
	if err != nil {
		return nil, err
	}
	res.Table = derived

	sum, err := analysis.Summarize(derived, bins, norm, opt.Summary)
	if err != nil {
		return nil, err
	}
	sum.Name = filepath.Base(opt.Path)
	sum.Clean = st
	sum.Dropped = len(invalid)
	res.Summary = sum
	log.Info("summarized", zap.Int("rows", sum.Rows), zap.Int("warnings", len(sum.Warnings)))

	if opt.Printer != nil {
		opt.Printer.Cleaning(st, len(invalid))
		opt.Printer.Summary(sum)
	}

	if opt.MarkdownOut != "" {
		if err := utils.SafeWriteFile(opt.MarkdownOut, []byte(sum.Markdown())); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		log.Info("summary written", zap.String("path", opt.MarkdownOut))
	}

	if len(specs) == 0 {
		return res, nil
	}
	sink := opt.Sink
	if sink == nil {
		res.ChartsDir = filepath.Join(opt.ChartsDir, res.RunID)
		sink = render.DirSink{Dir: res.ChartsDir}
	}
	r := render.NewRenderer(opt.ChartWidthIn, opt.ChartHeightIn)
	res.Charts, res.ChartErrors = render.RenderAll(r, specs, derived, sink, log)
	log.Info("charts rendered", zap.Int("ok", len(res.Charts)), zap.Int("failed", len(res.ChartErrors)))
	if opt.Printer != nil {
		opt.Printer.Charts(res.Charts, res.ChartErrors)
	}
	return res, nil
}
