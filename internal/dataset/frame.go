package dataset

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingMarkers are cell texts treated as missing values, matching the usual
// spreadsheet export conventions.
var missingMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "#N/A": {}, "NaN": {}, "nan": {}, "-NaN": {},
	"NULL": {}, "null": {}, "None": {}, "<NA>": {},
}

// IsMissing reports whether a raw cell holds no value.
func IsMissing(s string) bool {
	_, ok := missingMarkers[strings.TrimSpace(s)]
	return ok
}

// Frame is an untyped, column-named grid of cells as read from the source,
// held as a dataframe of string series. Missing cells are NA elements. Frames
// are immutable values: every cleaning stage returns a new Frame.
type Frame struct {
	df dataframe.DataFrame
}

// NewFrame builds a Frame from column names and rows of cells. Rows are padded
// or cut to the column count and missing markers become NA.
func NewFrame(columns []string, rows [][]string) *Frame {
	if len(columns) == 0 {
		return &Frame{}
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, append([]string(nil), columns...))
	for _, r := range rows {
		row := make([]string, len(columns))
		for j := 0; j < len(r) && j < len(row); j++ {
			if !IsMissing(r[j]) {
				row[j] = r[j]
			}
		}
		records = append(records, row)
	}
	if len(rows) == 0 {
		cols := make([]series.Series, len(columns))
		for i, name := range columns {
			cols[i] = series.New([]string{}, series.String, name)
		}
		return &Frame{df: dataframe.New(cols...)}
	}
	return &Frame{df: dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{""}),
	)}
}

// Err returns the first dataframe error raised while building the Frame.
func (f *Frame) Err() error {
	if f == nil {
		return nil
	}
	return f.df.Err
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return f.df.Nrow()
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	return f.df.Names()
}

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns() {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (f *Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Column returns a copy of the named column's cells with NA as "".
func (f *Frame) Column(name string) ([]string, bool) {
	if !f.Has(name) {
		return nil, false
	}
	s := f.df.Col(name)
	out := make([]string, s.Len())
	for i := range out {
		if e := s.Elem(i); !e.IsNA() {
			out[i] = e.String()
		}
	}
	return out, true
}

// Rows returns a copy of the cells row by row with NA as "".
func (f *Frame) Rows() [][]string {
	cols := f.Columns()
	out := make([][]string, f.Len())
	for i := range out {
		out[i] = make([]string, len(cols))
	}
	for j, name := range cols {
		cells, _ := f.Column(name)
		for i, c := range cells {
			out[i][j] = c
		}
	}
	return out
}

// Equal reports whether two frames hold the same columns and cells.
func (f *Frame) Equal(o *Frame) bool {
	if f.Len() != o.Len() {
		return false
	}
	fc, oc := f.Columns(), o.Columns()
	if len(fc) != len(oc) {
		return false
	}
	for j, name := range fc {
		if oc[j] != name {
			return false
		}
		a, _ := f.Column(name)
		b, _ := o.Column(name)
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

func notNA(el series.Element) bool { return !el.IsNA() }

func allNA(s series.Series) bool {
	for _, na := range s.IsNaN() {
		if !na {
			return false
		}
	}
	return true
}
