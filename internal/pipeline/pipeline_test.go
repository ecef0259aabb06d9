package pipeline_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/dataset/datasettest"
	"github.com/KaramelBytes/census-cli/internal/pipeline"
	"github.com/KaramelBytes/census-cli/internal/render"
	"github.com/KaramelBytes/census-cli/internal/report"
)

func TestRunWithoutCharts(t *testing.T) {
	opt := pipeline.DefaultOptions(datasettest.WriteCensusWorkbook(t))
	opt.RenderCharts = false
	var out, errOut bytes.Buffer
	opt.Printer = report.New(&out, &errOut, false)

	res, err := pipeline.Run(opt)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 5, res.Table.Len())
	assert.Equal(t, []float64{10, 20, 30, 40, 100}, res.Binning.Edges)
	assert.Equal(t, 1, res.Clean.EmptyRows)
	assert.Equal(t, 1, res.Clean.MissingKeyRows)
	assert.Equal(t, 1, res.Clean.CoercedCells)
	assert.Len(t, res.Coercions, 1)
	assert.Empty(t, res.Charts)

	assert.Contains(t, out.String(), "Mean Total Persons: 40")
	assert.Contains(t, out.String(), "Age Groups Present: [0-4, 10-14, 5-9, All ages]")
	assert.Contains(t, errOut.String(), "Read 8 rows, kept 5")
}

func TestRunRendersChartsIntoRunDir(t *testing.T) {
	opt := pipeline.DefaultOptions(datasettest.WriteCensusWorkbook(t))
	opt.ChartsDir = t.TempDir()
	opt.ChartWidthIn, opt.ChartHeightIn = 4, 3
	opt.Only = []string{"religion_counts", "area_type_share"}

	res, err := pipeline.Run(opt)
	require.NoError(t, err)
	require.Empty(t, res.ChartErrors)
	require.Len(t, res.Charts, 2)
	assert.Equal(t, filepath.Join(opt.ChartsDir, res.RunID), res.ChartsDir)
	for _, img := range res.Charts {
		_, err := os.Stat(filepath.Join(res.ChartsDir, img.Name+".png"))
		assert.NoError(t, err)
	}
}

type memSink struct{ names []string }

func (m *memSink) Write(img *render.Image) (string, error) {
	m.names = append(m.names, img.Name)
	return "mem://" + img.Name, nil
}

func TestRunAllChartsToSink(t *testing.T) {
	opt := pipeline.DefaultOptions(datasettest.WriteCensusWorkbook(t))
	opt.ChartWidthIn, opt.ChartHeightIn = 4, 3
	sink := &memSink{}
	opt.Sink = sink

	res, err := pipeline.Run(opt)
	require.NoError(t, err)
	assert.Empty(t, res.ChartErrors)
	assert.Len(t, sink.names, 8)
	assert.Empty(t, res.ChartsDir)
}

func TestRunWritesMarkdown(t *testing.T) {
	opt := pipeline.DefaultOptions(datasettest.WriteCensusWorkbook(t))
	opt.RenderCharts = false
	opt.MarkdownOut = filepath.Join(t.TempDir(), "out", "summary.md")

	_, err := pipeline.Run(opt)
	require.NoError(t, err)
	data, err := os.ReadFile(opt.MarkdownOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DATASET SUMMARY]")
	assert.Contains(t, string(data), "File: census.xlsx")
}

func TestRunUnknownChartFailsBeforeLoading(t *testing.T) {
	opt := pipeline.DefaultOptions(filepath.Join(t.TempDir(), "absent.xlsx"))
	opt.Only = []string{"pie_in_the_sky"}

	_, err := pipeline.Run(opt)
	require.Error(t, err)
	var le *dataset.LoadError
	assert.False(t, errors.As(err, &le))
}

func TestRunMissingFile(t *testing.T) {
	opt := pipeline.DefaultOptions(filepath.Join(t.TempDir(), "absent.xlsx"))
	_, err := pipeline.Run(opt)
	var le *dataset.LoadError
	assert.ErrorAs(t, err, &le)
}

func TestRunSchemaError(t *testing.T) {
	header := []any{"", "", "", "", "Urban", "", "", "Persons", "Males"}
	rows := [][]any{{"01", "000", "00000", "INDIA", "Total", "Hindu", "All ages", 100, 52}}
	opt := pipeline.DefaultOptions(datasettest.WriteWorkbook(t, header, rows))
	opt.RenderCharts = false

	_, err := pipeline.Run(opt)
	var se *dataset.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{dataset.ColTotalFemales}, se.Missing)
}

func TestRunNoValidRows(t *testing.T) {
	rows := [][]any{datasettest.Row("INDIA", "Total", "Hindu", "All ages", "x", 1, 1)}
	opt := pipeline.DefaultOptions(datasettest.WriteWorkbook(t, datasettest.Header, rows))
	opt.RenderCharts = false

	_, err := pipeline.Run(opt)
	assert.ErrorIs(t, err, pipeline.ErrNoValidRows)
}
