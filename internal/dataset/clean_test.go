package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/dataset/datasettest"
)

func loadCensus(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.Load(datasettest.WriteCensusWorkbook(t), dataset.DefaultLoadOptions())
	require.NoError(t, err)
	return f
}

func TestCleanCensusWorkbook(t *testing.T) {
	f := loadCensus(t)

	out, st, coerce := dataset.Clean(f, dataset.CensusLayout(), dataset.NumberFormat{})

	require.NoError(t, out.Err())
	assert.Equal(t, dataset.RequiredColumns, out.Columns())
	assert.Equal(t, 5, out.Len())
	assert.Equal(t, 1, st.EmptyRows)
	assert.Equal(t, []string{"Unnamed: 7"}, st.EmptyColumns)
	assert.Equal(t, 7, st.RenamedColumns)
	assert.Equal(t, []string{"Unnamed: 0", "Unnamed: 1", "Unnamed: 2"}, st.DroppedColumns)
	assert.Equal(t, 1, st.MissingKeyRows)
	assert.Equal(t, 1, st.CoercedCells)
	assert.Equal(t, 1, st.IncompleteRows)
	require.Len(t, coerce, 1)
	assert.Equal(t, dataset.ColTotalPersons, coerce[0].Column)
	assert.Equal(t, "n.a.", coerce[0].Value)

	persons, ok := out.Column(dataset.ColTotalPersons)
	require.True(t, ok)
	assert.Equal(t, []string{"100", "10", "20", "30", "40"}, persons)

	// The input frame is untouched.
	assert.Equal(t, len(datasettest.CensusRows()), f.Len())
	assert.True(t, f.Has("Unnamed: 7"))
}

func TestCleanIsIdempotent(t *testing.T) {
	once, _, _ := dataset.Clean(loadCensus(t), dataset.CensusLayout(), dataset.NumberFormat{})
	twice, st, coerce := dataset.Clean(once, dataset.CensusLayout(), dataset.NumberFormat{})

	assert.True(t, once.Equal(twice))
	assert.Zero(t, st.EmptyRows)
	assert.Zero(t, st.MissingKeyRows)
	assert.Zero(t, st.IncompleteRows)
	assert.Empty(t, coerce)
}

func TestRenameAndDropMissingColumnsAreNoOps(t *testing.T) {
	f := dataset.NewFrame([]string{"x"}, [][]string{{"1"}})

	renamed, n := dataset.RenameColumns(f, []dataset.Rename{{From: "absent", To: "y"}})
	assert.Zero(t, n)
	assert.Equal(t, []string{"x"}, renamed.Columns())
	require.NoError(t, renamed.Err())

	dropped := dataset.DropColumns(f, "absent")
	assert.True(t, f.Equal(dropped))
}

func TestDropEmptyRowsAndColumns(t *testing.T) {
	f := dataset.NewFrame([]string{"a", "b", "c"}, [][]string{
		{"1", "", ""},
		{"", "", ""},
		{"", "2", " "},
	})
	out := dataset.DropEmptyColumns(dataset.DropEmptyRows(f))
	assert.Equal(t, []string{"a", "b"}, out.Columns())
	assert.Equal(t, [][]string{{"1", ""}, {"", "2"}}, out.Rows())
}

func TestDropEmptyColumnsBetweenPopulated(t *testing.T) {
	f := dataset.NewFrame([]string{"a", "gap", "b"}, [][]string{
		{"1", "NaN", "x"},
		{"2", " ", "y"},
	})
	out := dataset.DropEmptyColumns(f)
	assert.Equal(t, []string{"a", "b"}, out.Columns())
	assert.Equal(t, [][]string{{"1", "x"}, {"2", "y"}}, out.Rows())
}

func TestDropEveryColumnLeavesEmptyFrame(t *testing.T) {
	f := dataset.NewFrame([]string{"a"}, [][]string{{""}, {"NA"}})
	out := dataset.DropEmptyColumns(f)
	require.NoError(t, out.Err())
	assert.Empty(t, out.Columns())
	assert.Zero(t, out.Len())
}

func TestCoerceNumericBlanksInvalidCells(t *testing.T) {
	f := dataset.NewFrame([]string{"n"}, [][]string{{"1,200"}, {"n.a."}, {""}})
	out, errs := dataset.CoerceNumeric(f, "n", dataset.NumberFormat{Thousands: ','})
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Row)
	assert.Equal(t, "n.a.", errs[0].Value)

	cells, ok := out.Column("n")
	require.True(t, ok)
	assert.Equal(t, []string{"1,200", "", ""}, cells)
	assert.Equal(t, 1, dataset.DropIncomplete(out).Len())
}

func TestBuildTableSchemaError(t *testing.T) {
	f := dataset.NewFrame([]string{dataset.ColArea, dataset.ColReligion}, [][]string{{"INDIA", "Hindu"}})
	_, _, err := dataset.BuildTable(f, dataset.NumberFormat{})
	var se *dataset.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Missing, dataset.ColTotalPersons)
	assert.NotContains(t, se.Missing, dataset.ColArea)
}

func TestBuildTableTypedRecords(t *testing.T) {
	cleaned, _, _ := dataset.Clean(loadCensus(t), dataset.CensusLayout(), dataset.NumberFormat{})

	tbl, coerce, err := dataset.BuildTable(cleaned, dataset.NumberFormat{})
	require.NoError(t, err)
	assert.Empty(t, coerce)
	require.Equal(t, 5, tbl.Len())

	first := tbl.Records[0]
	assert.Equal(t, "INDIA", first.Area)
	assert.Equal(t, dataset.AreaTotal, first.AreaType)
	assert.Equal(t, "Hindu", first.Religion)
	assert.Equal(t, "All ages", first.AgeGroup)
	assert.Equal(t, 100.0, first.TotalPersons)
	assert.Equal(t, 52.0, first.TotalMales)
	assert.Equal(t, 48.0, first.TotalFemales)

	for _, r := range tbl.Records {
		assert.NotEmpty(t, r.Area)
		assert.NotEmpty(t, r.AreaType)
		assert.NotEmpty(t, r.Religion)
		assert.NotEmpty(t, r.AgeGroup)
		assert.GreaterOrEqual(t, r.TotalPersons, 0.0)
	}
}

func TestBuildTableDropsInvalidRows(t *testing.T) {
	f := dataset.NewFrame(dataset.RequiredColumns, [][]string{
		{"A", "Urban", "Hindu", "0-4", "10", "5", "5"},
		{"B", "Suburban", "Hindu", "0-4", "10", "5", "5"},
		{"C", "Rural", "Hindu", "0-4", "-3", "5", "5"},
		{"D", "Rural", "Hindu", "0-4", "3", "x", "5"},
	})
	tbl, coerce, err := dataset.BuildTable(f, dataset.NumberFormat{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	require.Len(t, coerce, 3)
	assert.Equal(t, dataset.ColAreaType, coerce[0].Column)
	assert.Equal(t, 1, coerce[0].Row)
	assert.Equal(t, dataset.ColTotalPersons, coerce[1].Column)
	assert.Equal(t, dataset.ColTotalMales, coerce[2].Column)
}

func TestTableColumnAccess(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.Record{{Area: "A", TotalPersons: 5}}}

	got, err := tbl.Floats(dataset.ColTotalPersons)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, got)

	_, err = tbl.Floats(dataset.ColNormalized)
	var se *dataset.SchemaError
	assert.ErrorAs(t, err, &se)

	_, err = tbl.Strings(dataset.ColCategory)
	assert.ErrorAs(t, err, &se)

	_, err = tbl.Floats("Literacy")
	assert.ErrorIs(t, err, dataset.ErrNotNumeric)
	_, err = tbl.Strings(dataset.ColTotalPersons)
	assert.ErrorIs(t, err, dataset.ErrNotText)
}
