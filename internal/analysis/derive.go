package analysis

import (
	"math"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// Normalization records the range used to rescale Total_Persons.
// Defined is false when max equals min; normalized values are then NaN.
type Normalization struct {
	Min, Max float64
	Defined  bool
}

// Derive returns a new table with Total_Persons_in_thousands and
// Total_Persons_Normalized computed from the table as given.
func Derive(t *dataset.Table) (*dataset.Table, Normalization, error) {
	vals, err := t.Floats(dataset.ColTotalPersons)
	if err != nil {
		return nil, Normalization{}, err
	}
	if len(vals) == 0 {
		return nil, Normalization{}, ErrNoValues
	}
	n := Normalization{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range vals {
		n.Min = math.Min(n.Min, v)
		n.Max = math.Max(n.Max, v)
	}
	n.Defined = n.Max > n.Min
	span := n.Max - n.Min

	out := t.Clone()
	for i := range out.Records {
		r := &out.Records[i]
		r.InThousands = r.TotalPersons / 1000
		if n.Defined {
			r.Normalized = (r.TotalPersons - n.Min) / span
		} else {
			r.Normalized = math.NaN()
		}
	}
	out.Derived = true
	return out, n, nil
}
