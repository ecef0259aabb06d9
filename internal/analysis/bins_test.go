package analysis

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

func tableOf(persons ...float64) *dataset.Table {
	t := &dataset.Table{}
	for i, p := range persons {
		t.Records = append(t.Records, dataset.Record{
			Area:         string(rune('A' + i%26)),
			AreaType:     dataset.AreaUrban,
			Religion:     "Hindu",
			AgeGroup:     "0-4",
			TotalPersons: p,
			TotalMales:   p / 2,
			TotalFemales: p / 2,
		})
	}
	return t
}

func TestQuartileEdges(t *testing.T) {
	edges, err := QuartileEdges([]float64{40, 10, 100, 30, 20})
	if err != nil {
		t.Fatalf("QuartileEdges: %v", err)
	}
	if diff := cmp.Diff([]float64{10, 20, 30, 40, 100}, edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
	if _, err := QuartileEdges(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestQuartileEdgesInterpolate(t *testing.T) {
	edges, err := QuartileEdges([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("QuartileEdges: %v", err)
	}
	want := []float64{1, 1.75, 2.5, 3.25, 4}
	for i := range want {
		if !almostEqual(edges[i], want[i], 1e-12) {
			t.Fatalf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] < edges[i-1] {
			t.Fatalf("edges decreasing: %v", edges)
		}
	}
}

func TestBinningBoundaries(t *testing.T) {
	b, err := NewBinning([]float64{10, 20, 30, 40, 100}, PopularityLabels)
	if err != nil {
		t.Fatalf("NewBinning: %v", err)
	}
	cases := map[float64]string{
		10:  "not_popular",
		20:  "not_popular",
		25:  "below_avg",
		30:  "below_avg",
		35:  "average",
		40:  "popular",
		100: "popular",
	}
	for v, want := range cases {
		if got := b.Assign(v); got != want {
			t.Errorf("Assign(%v) = %s, want %s", v, got, want)
		}
	}
	if len(b.Collapsed) != 0 || b.Degenerate {
		t.Fatalf("unexpected collapse: %#v", b)
	}
}

func TestBinningCollapsesEqualEdges(t *testing.T) {
	b, err := NewBinning([]float64{0, 10, 10, 20, 30}, PopularityLabels)
	if err != nil {
		t.Fatalf("NewBinning: %v", err)
	}
	if diff := cmp.Diff([]string{"below_avg"}, b.Collapsed); diff != "" {
		t.Fatalf("collapsed mismatch:\n%s", diff)
	}
	cases := map[float64]string{0: "not_popular", 10: "not_popular", 15: "average", 20: "popular", 25: "popular"}
	for v, want := range cases {
		if got := b.Assign(v); got != want {
			t.Errorf("Assign(%v) = %s, want %s", v, got, want)
		}
	}
}

func TestBinningLeadingEdgesCollapse(t *testing.T) {
	edges, err := QuartileEdges([]float64{5, 5, 5, 5, 10})
	if err != nil {
		t.Fatalf("QuartileEdges: %v", err)
	}
	b, err := NewBinning(edges, PopularityLabels)
	if err != nil {
		t.Fatalf("NewBinning: %v", err)
	}
	if len(b.EffLabels) != 1 || b.EffLabels[0] != "popular" {
		t.Fatalf("effective labels = %v", b.EffLabels)
	}
	if b.Assign(5) != "popular" || b.Assign(10) != "popular" {
		t.Fatalf("single remaining bin should take every value")
	}
}

func TestBinningDegenerate(t *testing.T) {
	b, err := NewBinning([]float64{3, 3, 3, 3, 3}, PopularityLabels)
	if err != nil {
		t.Fatalf("NewBinning: %v", err)
	}
	if !b.Degenerate {
		t.Fatalf("expected degenerate binning")
	}
	if got := b.Assign(3); got != "not_popular" {
		t.Fatalf("Assign = %s", got)
	}
}

func TestNewBinningValidates(t *testing.T) {
	if _, err := NewBinning([]float64{1, 0, 2, 3, 4}, PopularityLabels); err == nil {
		t.Fatalf("expected error for decreasing edges")
	}
	if _, err := NewBinning([]float64{1, 2, 3}, PopularityLabels); err == nil {
		t.Fatalf("expected error for label count mismatch")
	}
}

func TestCategorizePartitionsAndIsDeterministic(t *testing.T) {
	vals := []float64{3, 8, 1, 13, 21, 2, 5, 34, 55, 89, 144, 1.5}
	tbl := tableOf(vals...)

	out, b, err := Categorize(tbl, PopularityLabels)
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if tbl.Categorized || tbl.Records[0].Category != "" {
		t.Fatalf("input table was modified")
	}
	labelOf := map[float64]string{}
	seen := map[string]int{}
	for _, r := range out.Records {
		if r.Category == "" {
			t.Fatalf("row %v left unlabeled", r.TotalPersons)
		}
		labelOf[r.TotalPersons] = r.Category
		seen[r.Category]++
	}
	for _, l := range PopularityLabels {
		if seen[l] == 0 {
			t.Errorf("label %s unused for distinct values; edges %v", l, b.Edges)
		}
	}

	shuffled := append([]float64(nil), vals...)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	out2, _, err := Categorize(tableOf(shuffled...), PopularityLabels)
	if err != nil {
		t.Fatalf("Categorize shuffled: %v", err)
	}
	for _, r := range out2.Records {
		if labelOf[r.TotalPersons] != r.Category {
			t.Fatalf("value %v labeled %s, then %s", r.TotalPersons, labelOf[r.TotalPersons], r.Category)
		}
	}
}

func TestCategorizeEmptyTable(t *testing.T) {
	if _, _, err := Categorize(&dataset.Table{}, PopularityLabels); err == nil {
		t.Fatalf("expected error for empty table")
	}
}
