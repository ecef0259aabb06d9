package analysis

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// PopularityLabels are the ordinal categories assigned to Total_Persons.
var PopularityLabels = []string{"not_popular", "below_avg", "average", "popular"}

// quartileProbs yields the edges min, q25, median, q75, max.
var quartileProbs = []float64{0, 0.25, 0.5, 0.75, 1}

// ErrNoValues is returned when a statistic needs at least one value.
var ErrNoValues = errors.New("no values")

// QuartileEdges computes [min, q25, median, q75, max]. Edges are non-decreasing.
func QuartileEdges(vals []float64) ([]float64, error) {
	if len(vals) == 0 {
		return nil, ErrNoValues
	}
	s := sortedCopy(vals)
	edges := make([]float64, len(quartileProbs))
	for i, q := range quartileProbs {
		edges[i] = quantile(s, q)
	}
	return edges, nil
}

// Binning maps values to ordinal labels over quantile edges.
//
// With interior edges e1..ek, a value v gets the first label when v <= e1, the
// last label when v >= ek, and otherwise the label of the interval (e[i-1], e[i]]
// containing it. An interval whose two edges are equal is collapsed: its label is
// never assigned and is listed in Collapsed. When every edge is equal no interval
// remains and every value gets the first label (Degenerate).
type Binning struct {
	// Edges as computed, including duplicates.
	Edges []float64
	// Labels as requested, one per interval of Edges.
	Labels []string
	// Effective edges and labels after collapsing equal-edge intervals.
	EffEdges  []float64
	EffLabels []string
	Collapsed []string
	// Degenerate is set when all edges are equal.
	Degenerate bool
}

// NewBinning builds a Binning from non-decreasing edges and len(edges)-1 labels.
func NewBinning(edges []float64, labels []string) (*Binning, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("need at least 2 edges, got %d", len(edges))
	}
	if len(labels) != len(edges)-1 {
		return nil, fmt.Errorf("need %d labels for %d edges, got %d", len(edges)-1, len(edges), len(labels))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] < edges[i-1] {
			return nil, fmt.Errorf("edges must be non-decreasing: %v", edges)
		}
	}
	b := &Binning{
		Edges:    append([]float64(nil), edges...),
		Labels:   append([]string(nil), labels...),
		EffEdges: []float64{edges[0]},
	}
	for j := 0; j < len(labels); j++ {
		if edges[j] == edges[j+1] {
			b.Collapsed = append(b.Collapsed, labels[j])
			continue
		}
		b.EffEdges = append(b.EffEdges, edges[j+1])
		b.EffLabels = append(b.EffLabels, labels[j])
	}
	if len(b.EffLabels) == 0 {
		b.Degenerate = true
	}
	return b, nil
}

// Assign returns the label for v.
func (b *Binning) Assign(v float64) string {
	if b.Degenerate {
		return b.Labels[0]
	}
	interior := b.EffEdges[1 : len(b.EffEdges)-1]
	k := len(interior)
	if k == 0 {
		return b.EffLabels[0]
	}
	if v <= interior[0] {
		return b.EffLabels[0]
	}
	if v >= interior[k-1] {
		return b.EffLabels[k]
	}
	for i := 1; i < k; i++ {
		if v <= interior[i] {
			return b.EffLabels[i]
		}
	}
	return b.EffLabels[k]
}

// Categorize labels every record by its Total_Persons quartile and returns a
// new table. The input table is not modified.
func Categorize(t *dataset.Table, labels []string) (*dataset.Table, *Binning, error) {
	vals, err := t.Floats(dataset.ColTotalPersons)
	if err != nil {
		return nil, nil, err
	}
	edges, err := QuartileEdges(vals)
	if err != nil {
		return nil, nil, fmt.Errorf("categorize %s: %w", dataset.ColTotalPersons, err)
	}
	b, err := NewBinning(edges, labels)
	if err != nil {
		return nil, nil, fmt.Errorf("categorize %s: %w", dataset.ColTotalPersons, err)
	}
	out := t.Clone()
	for i := range out.Records {
		out.Records[i].Category = b.Assign(out.Records[i].TotalPersons)
	}
	out.Categorized = true
	return out, b, nil
}
