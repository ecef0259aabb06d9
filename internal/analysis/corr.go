package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// numericColumns in display order.
var numericColumns = []string{
	dataset.ColTotalPersons,
	dataset.ColTotalMales,
	dataset.ColTotalFemales,
	dataset.ColInThousands,
	dataset.ColNormalized,
}

// CorrelationMatrix correlates every numeric column the table carries. Columns
// holding NaN (an undefined normalization) are left out. A pair involving a
// constant column is NaN.
func CorrelationMatrix(t *dataset.Table) (*CorrMatrix, error) {
	if t.Len() < 2 {
		return nil, ErrNoValues
	}
	var names []string
	var cols [][]float64
	for _, name := range numericColumns {
		vals, err := t.Floats(name)
		if err != nil {
			continue
		}
		if hasNaN(vals) {
			continue
		}
		names = append(names, name)
		cols = append(cols, vals)
	}
	n := len(cols)
	m := &CorrMatrix{Columns: names, Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := stat.Correlation(cols[a], cols[b], nil)
			if !math.IsNaN(r) {
				r = math.Max(-1, math.Min(1, r))
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m, nil
}

// At returns the correlation between two named columns.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

func hasNaN(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
