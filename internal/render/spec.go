package render

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// Kind selects how a Spec is drawn.
type Kind string

const (
	KindBar       Kind = "bar"
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
	KindHeatmap   Kind = "heatmap"
	KindPie       Kind = "pie"
	KindDonut     Kind = "donut"
	KindLine      Kind = "line"
)

// Spec declares one chart. Specs carry no data; the Renderer reads the named
// columns from the table it is given.
type Spec struct {
	Name   string
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// X is the category column for bar, pie and donut charts and the x column
	// for scatter plots. Y, when set on a category chart, is summed per
	// category instead of counting rows.
	X string
	Y string
	// Hue splits scatter points into colored groups.
	Hue string

	// Limit keeps the first N categories or records (0 keeps all).
	Limit int
	// Bins is the histogram bin count.
	Bins int
	// KDE overlays a kernel density estimate scaled to counts.
	KDE bool
	// LogScale puts both axes of a scatter plot on a log scale.
	LogScale bool
	// Annotate prints cell values on a heatmap.
	Annotate bool

	Style Style
}

// Style holds colors as hex strings ("1f77b4") so specs stay printable.
type Style struct {
	Fill    string
	Edge    string
	Palette []string
	// Alpha in [0,1]; 0 means opaque.
	Alpha float64
	// RotateLabels rotates x tick labels, in degrees.
	RotateLabels float64
	DashDot      bool
	Markers      bool
}

// set2 is the qualitative palette used for categorical charts.
var set2 = []string{"66c2a5", "fc8d62", "8da0cb", "e78ac3", "a6d854", "ffd92f", "e5c494", "b3b3b3"}

// CatalogOptions sizes the catalog charts.
type CatalogOptions struct {
	HistBins    int
	LineRecords int
	TopAreas    int
}

// DefaultCatalogOptions returns the sizes used by the census analysis.
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{HistBins: 30, LineRecords: 20, TopAreas: 20}
}

// Catalog returns the census charts in display order.
func Catalog(opt CatalogOptions) []Spec {
	return []Spec{
		{
			Name:   "religion_counts",
			Kind:   KindBar,
			Title:  "Count of Records by Religion",
			XLabel: dataset.ColReligion,
			YLabel: "Count",
			X:      dataset.ColReligion,
			Style:  Style{Fill: "4c72b0", RotateLabels: 45},
		},
		{
			Name:   "persons_distribution",
			Kind:   KindHistogram,
			Title:  "Distribution of Total Persons",
			XLabel: dataset.ColTotalPersons,
			YLabel: "Frequency",
			X:      dataset.ColTotalPersons,
			Bins:   opt.HistBins,
			KDE:    true,
			Style:  Style{Fill: "ffff00", Edge: "008000"},
		},
		{
			Name:     "persons_vs_males",
			Kind:     KindScatter,
			Title:    "Total Persons vs Total Males by Religion",
			XLabel:   dataset.ColTotalPersons,
			YLabel:   dataset.ColTotalMales,
			X:        dataset.ColTotalPersons,
			Y:        dataset.ColTotalMales,
			Hue:      dataset.ColReligion,
			LogScale: true,
			Style:    Style{Palette: set2, Alpha: 0.4},
		},
		{
			Name:     "correlation_heatmap",
			Kind:     KindHeatmap,
			Title:    "Correlation Matrix",
			Annotate: true,
			Style:    Style{RotateLabels: 30},
		},
		{
			Name:  "religion_share",
			Kind:  KindPie,
			Title: "Distribution of Religion",
			X:     dataset.ColReligion,
			Style: Style{Palette: set2},
		},
		{
			Name:   "persons_first_records",
			Kind:   KindLine,
			Title:  fmt.Sprintf("Total Persons over the First %d Records", opt.LineRecords),
			XLabel: "Record",
			YLabel: dataset.ColTotalPersons,
			Y:      dataset.ColTotalPersons,
			Limit:  opt.LineRecords,
			Style:  Style{Edge: "ff0000", DashDot: true, Markers: true},
		},
		{
			Name:  "area_type_share",
			Kind:  KindDonut,
			Title: "Distribution of Area Type",
			X:     dataset.ColAreaType,
			Style: Style{Palette: []string{"800080", "808080", "c9a0dc"}},
		},
		{
			Name:   "top_areas",
			Kind:   KindBar,
			Title:  fmt.Sprintf("Top %d Areas by Total Persons", opt.TopAreas),
			XLabel: dataset.ColArea,
			YLabel: dataset.ColTotalPersons,
			X:      dataset.ColArea,
			Y:      dataset.ColTotalPersons,
			Limit:  opt.TopAreas,
			Style:  Style{Fill: "0000ff", RotateLabels: 45},
		},
	}
}

// Select keeps the specs whose names appear in only, in catalog order.
// An empty only keeps every spec. Unknown names are an error.
func Select(specs []Spec, only []string) ([]Spec, error) {
	if len(only) == 0 {
		return specs, nil
	}
	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[strings.TrimSpace(n)] = true
	}
	var out []Spec
	for _, s := range specs {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for n := range want {
			unknown = append(unknown, n)
		}
		return nil, fmt.Errorf("unknown chart(s): %s", strings.Join(sortedStrings(unknown), ", "))
	}
	return out, nil
}
