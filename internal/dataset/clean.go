package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Rename maps a source column name to its semantic name.
type Rename struct {
	From, To string
}

// Layout declares the fixed column layout the Cleaner normalizes to.
type Layout struct {
	Renames []Rename
	// Drop lists known-irrelevant columns; absent ones are ignored.
	Drop []string
	// KeyColumns must be present in a row for it to be kept.
	KeyColumns []string
	// NumericColumn is coerced to a number; cells that fail become missing.
	NumericColumn string
}

// Column names of the cleaned census table.
const (
	ColArea         = "Area"
	ColAreaType     = "Area_Type"
	ColReligion     = "Religion"
	ColAgeGroup     = "Age_Group"
	ColTotalPersons = "Total_Persons"
	ColTotalMales   = "Total_Males"
	ColTotalFemales = "Total_Females"
	ColCategory     = "Total_Persons_Category"
	ColInThousands  = "Total_Persons_in_thousands"
	ColNormalized   = "Total_Persons_Normalized"
)

// RequiredColumns lists the fields every cleaned row must carry.
var RequiredColumns = []string{
	ColArea, ColAreaType, ColReligion, ColAgeGroup, ColTotalPersons, ColTotalMales, ColTotalFemales,
}

// CensusLayout is the positional layout of the census religion/age workbook.
func CensusLayout() Layout {
	return Layout{
		Renames: []Rename{
			{From: "Unnamed: 3", To: ColArea},
			{From: "Urban", To: ColAreaType},
			{From: "Unnamed: 5", To: ColReligion},
			{From: "Unnamed: 6", To: ColAgeGroup},
			{From: "Persons", To: ColTotalPersons},
			{From: "Males", To: ColTotalMales},
			{From: "Females", To: ColTotalFemales},
		},
		Drop:          []string{"Unnamed: 0", "Unnamed: 1", "Unnamed: 2"},
		KeyColumns:    []string{ColReligion, ColAgeGroup, ColTotalPersons},
		NumericColumn: ColTotalPersons,
	}
}

// CleanStats counts what each cleaning step removed.
type CleanStats struct {
	InputRows      int
	EmptyRows      int
	EmptyColumns   []string
	RenamedColumns int
	DroppedColumns []string
	MissingKeyRows int
	CoercedCells   int
	IncompleteRows int
	OutputRows     int
}

// Clean applies every cleaning step in order and returns a new Frame.
// Clean(Clean(f)) equals Clean(f).
func Clean(f *Frame, layout Layout, nf NumberFormat) (*Frame, CleanStats, []*CoercionError) {
	st := CleanStats{InputRows: f.Len()}
	out := DropEmptyRows(f)
	st.EmptyRows = f.Len() - out.Len()

	before := out.Columns()
	out = DropEmptyColumns(out)
	st.EmptyColumns = removed(before, out.Columns())

	out, st.RenamedColumns = RenameColumns(out, layout.Renames)

	before = out.Columns()
	out = DropColumns(out, layout.Drop...)
	st.DroppedColumns = removed(before, out.Columns())

	n := out.Len()
	out = DropMissing(out, layout.KeyColumns...)
	st.MissingKeyRows = n - out.Len()

	var coerce []*CoercionError
	if layout.NumericColumn != "" {
		out, coerce = CoerceNumeric(out, layout.NumericColumn, nf)
		st.CoercedCells = len(coerce)
	}

	n = out.Len()
	out = DropIncomplete(out)
	st.IncompleteRows = n - out.Len()
	st.OutputRows = out.Len()
	return out, st, coerce
}

// DropEmptyRows drops rows where every field is missing.
func DropEmptyRows(f *Frame) *Frame {
	cols := f.Columns()
	if len(cols) == 0 {
		return f
	}
	filters := make([]dataframe.F, len(cols))
	for i, c := range cols {
		filters[i] = dataframe.F{Colname: c, Comparator: series.CompFunc, Comparando: notNA}
	}
	return &Frame{df: f.df.Filter(filters...)}
}

// DropEmptyColumns drops columns where every value is missing.
func DropEmptyColumns(f *Frame) *Frame {
	var empty []string
	for _, c := range f.Columns() {
		if allNA(f.df.Col(c)) {
			empty = append(empty, c)
		}
	}
	return DropColumns(f, empty...)
}

// RenameColumns renames columns; renaming a column that does not exist is a no-op.
// It returns the number of columns renamed.
func RenameColumns(f *Frame, renames []Rename) (*Frame, int) {
	out := f
	n := 0
	for _, r := range renames {
		if r.From == r.To || !out.Has(r.From) {
			continue
		}
		out = &Frame{df: out.df.Rename(r.To, r.From)}
		n++
	}
	return out, n
}

// DropColumns removes the named columns; absent names are ignored.
func DropColumns(f *Frame, names ...string) *Frame {
	var present []string
	for _, n := range names {
		if f.Has(n) {
			present = append(present, n)
		}
	}
	switch {
	case len(present) == 0:
		return f
	case len(present) == len(f.Columns()):
		return &Frame{}
	}
	return &Frame{df: f.df.Drop(present)}
}

// DropMissing drops rows missing any of the given columns. Columns absent from
// the frame are ignored here; BuildTable reports them as a SchemaError.
func DropMissing(f *Frame, cols ...string) *Frame {
	df := f.df
	for _, c := range cols {
		if !f.Has(c) {
			continue
		}
		df = df.Filter(dataframe.F{Colname: c, Comparator: series.CompFunc, Comparando: notNA})
	}
	return &Frame{df: df}
}

// DropIncomplete drops rows with any missing field.
func DropIncomplete(f *Frame) *Frame {
	return DropMissing(f, f.Columns()...)
}

// CoerceNumeric checks the named column for numeric cells. Cells that fail to
// parse become missing and are reported as CoercionErrors; valid cells keep
// their source text so BuildTable parses them with the same NumberFormat.
func CoerceNumeric(f *Frame, col string, nf NumberFormat) (*Frame, []*CoercionError) {
	if !f.Has(col) {
		return f, nil
	}
	s := f.df.Col(col)
	cells := s.Records()
	var errs []*CoercionError
	for i := range cells {
		if s.Elem(i).IsNA() {
			continue
		}
		if _, err := ParseNumber(cells[i], nf); err != nil {
			errs = append(errs, &CoercionError{Row: i, Column: col, Value: cells[i], Err: err})
			cells[i] = "NaN"
		}
	}
	if len(errs) == 0 {
		return f, nil
	}
	return &Frame{df: f.df.Mutate(series.New(cells, series.String, col))}, errs
}

func removed(before, after []string) []string {
	have := make(map[string]bool, len(after))
	for _, c := range after {
		have[c] = true
	}
	var out []string
	for _, c := range before {
		if !have[c] {
			out = append(out, c)
		}
	}
	return out
}
