package dataset

import (
	"fmt"
	"strings"
)

// AreaType distinguishes urban and rural counts. Census tables also carry
// "Total" aggregate rows, which are kept as their own type.
type AreaType string

const (
	AreaUrban AreaType = "Urban"
	AreaRural AreaType = "Rural"
	AreaTotal AreaType = "Total"
)

// ParseAreaType accepts the known area types case-insensitively.
func ParseAreaType(s string) (AreaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urban":
		return AreaUrban, nil
	case "rural":
		return AreaRural, nil
	case "total":
		return AreaTotal, nil
	}
	return "", errUnknownKind
}

// Record is one cleaned census row.
type Record struct {
	Area         string
	AreaType     AreaType
	Religion     string
	AgeGroup     string
	TotalPersons float64
	TotalMales   float64
	TotalFemales float64

	// Category is the popularity label; empty until the table is categorized.
	Category string
	// InThousands is TotalPersons/1000; set once the table is derived.
	InThousands float64
	// Normalized is TotalPersons rescaled to [0,1]; NaN when undefined.
	Normalized float64
}

// Table is the typed census table threaded between pipeline stages.
// Stages never modify a Table in place; they return a new one.
type Table struct {
	Records     []Record
	Categorized bool
	Derived     bool
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Clone returns a copy whose records may be modified freely.
func (t *Table) Clone() *Table {
	out := *t
	out.Records = append([]Record(nil), t.Records...)
	return &out
}

// Head returns a table holding at most the first n records.
func (t *Table) Head(n int) *Table {
	out := *t
	if n < len(t.Records) {
		out.Records = t.Records[:n]
	}
	out.Records = append([]Record(nil), out.Records...)
	return &out
}

// Floats returns a numeric column by name.
func (t *Table) Floats(name string) ([]float64, error) {
	var get func(r *Record) float64
	switch name {
	case ColTotalPersons:
		get = func(r *Record) float64 { return r.TotalPersons }
	case ColTotalMales:
		get = func(r *Record) float64 { return r.TotalMales }
	case ColTotalFemales:
		get = func(r *Record) float64 { return r.TotalFemales }
	case ColInThousands, ColNormalized:
		if !t.Derived {
			return nil, &SchemaError{Missing: []string{name}}
		}
		if name == ColInThousands {
			get = func(r *Record) float64 { return r.InThousands }
		} else {
			get = func(r *Record) float64 { return r.Normalized }
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, name)
	}
	out := make([]float64, len(t.Records))
	for i := range t.Records {
		out[i] = get(&t.Records[i])
	}
	return out, nil
}

// Strings returns a text column by name.
func (t *Table) Strings(name string) ([]string, error) {
	var get func(r *Record) string
	switch name {
	case ColArea:
		get = func(r *Record) string { return r.Area }
	case ColAreaType:
		get = func(r *Record) string { return string(r.AreaType) }
	case ColReligion:
		get = func(r *Record) string { return r.Religion }
	case ColAgeGroup:
		get = func(r *Record) string { return r.AgeGroup }
	case ColCategory:
		if !t.Categorized {
			return nil, &SchemaError{Missing: []string{name}}
		}
		get = func(r *Record) string { return r.Category }
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotText, name)
	}
	out := make([]string, len(t.Records))
	for i := range t.Records {
		out[i] = get(&t.Records[i])
	}
	return out, nil
}

// BuildTable validates a cleaned Frame once and converts it to typed records.
// A required column absent from the frame is a fatal *SchemaError. Rows whose
// counts are not finite non-negative numbers, or whose area type is unknown,
// are dropped and reported as CoercionErrors.
func BuildTable(f *Frame, nf NumberFormat) (*Table, []*CoercionError, error) {
	if err := f.Err(); err != nil {
		return nil, nil, err
	}
	idx := make(map[string]int, len(RequiredColumns))
	cols := make([][]string, len(RequiredColumns))
	var missing []string
	for i, c := range RequiredColumns {
		cells, ok := f.Column(c)
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[c] = i
		cols[i] = cells
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Missing: missing, Have: f.Columns()}
	}

	t := &Table{Records: make([]Record, 0, f.Len())}
	var errs []*CoercionError
	row := make([]string, len(RequiredColumns))
	for i := 0; i < f.Len(); i++ {
		for j := range cols {
			row[j] = cols[j][i]
		}
		rec, cerr := buildRecord(row, idx, nf)
		if cerr != nil {
			cerr.Row = i
			errs = append(errs, cerr)
			continue
		}
		t.Records = append(t.Records, rec)
	}
	return t, errs, nil
}

func buildRecord(row []string, idx map[string]int, nf NumberFormat) (Record, *CoercionError) {
	rec := Record{
		Area:     strings.TrimSpace(row[idx[ColArea]]),
		Religion: strings.TrimSpace(row[idx[ColReligion]]),
		AgeGroup: strings.TrimSpace(row[idx[ColAgeGroup]]),
	}
	for _, c := range []string{ColArea, ColReligion, ColAgeGroup} {
		if IsMissing(row[idx[c]]) {
			return rec, &CoercionError{Column: c, Value: row[idx[c]], Err: errNotText}
		}
	}
	at, err := ParseAreaType(row[idx[ColAreaType]])
	if err != nil {
		return rec, &CoercionError{Column: ColAreaType, Value: row[idx[ColAreaType]], Err: err}
	}
	rec.AreaType = at
	counts := []struct {
		col string
		dst *float64
	}{
		{ColTotalPersons, &rec.TotalPersons},
		{ColTotalMales, &rec.TotalMales},
		{ColTotalFemales, &rec.TotalFemales},
	}
	for _, c := range counts {
		v, err := ParseCount(row[idx[c.col]], nf)
		if err != nil {
			return rec, &CoercionError{Column: c.col, Value: row[idx[c.col]], Err: err}
		}
		*c.dst = v
	}
	return rec, nil
}
