package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// SummaryOptions controls the size of previews and aggregates.
type SummaryOptions struct {
	TopAreas           int
	HeadRows           int
	NormalizedHeadRows int
}

// DefaultSummaryOptions mirrors the console layout of the analysis.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{TopAreas: 20, HeadRows: 5, NormalizedHeadRows: 10}
}

// Summary is everything the Summarizer derives from a categorized, derived table.
type Summary struct {
	Name          string
	Rows          int
	Clean         dataset.CleanStats
	Dropped       int // rows dropped by coercion while typing the table
	Binning       *Binning
	Categories    []CategoryCount
	AreaTypes     []CategoryCount
	Religions     []CategoryCount
	Persons       Stats
	AgeGroups     []string
	Normalization Normalization
	TopAreas      []GroupTotal
	Corr          *CorrMatrix
	// Previews of the first records, carrying the derived columns.
	Head           []dataset.Record
	NormalizedHead []dataset.Record
	Warnings       []string
}

// Summarize computes the read-only summary of t. The table must already be
// categorized and derived.
func Summarize(t *dataset.Table, b *Binning, norm Normalization, opt SummaryOptions) (*Summary, error) {
	if !t.Categorized || !t.Derived {
		return nil, fmt.Errorf("summarize: table must be categorized and derived")
	}
	s := &Summary{Rows: t.Len(), Binning: b, Normalization: norm}

	cats, err := t.Strings(dataset.ColCategory)
	if err != nil {
		return nil, err
	}
	s.Categories = LabelCounts(cats, b.Labels)

	areaTypes, err := t.Strings(dataset.ColAreaType)
	if err != nil {
		return nil, err
	}
	s.AreaTypes = ValueCounts(areaTypes)

	religions, err := t.Strings(dataset.ColReligion)
	if err != nil {
		return nil, err
	}
	s.Religions = ValueCounts(religions)

	persons, err := t.Floats(dataset.ColTotalPersons)
	if err != nil {
		return nil, err
	}
	if s.Persons, err = Describe(persons); err != nil {
		return nil, fmt.Errorf("describe %s: %w", dataset.ColTotalPersons, err)
	}

	ages, err := t.Strings(dataset.ColAgeGroup)
	if err != nil {
		return nil, err
	}
	s.AgeGroups = DistinctSorted(ages)
	s.TopAreas = TopAreas(t, opt.TopAreas)
	s.Head = t.Head(opt.HeadRows).Records
	s.NormalizedHead = t.Head(opt.NormalizedHeadRows).Records

	if m, err := CorrelationMatrix(t); err == nil {
		s.Corr = m
	}

	if b.Degenerate {
		s.Warnings = append(s.Warnings, fmt.Sprintf("all %s values are equal; every row is labeled %q", dataset.ColTotalPersons, b.Labels[0]))
	} else if len(b.Collapsed) > 0 {
		s.Warnings = append(s.Warnings, fmt.Sprintf("equal quantile edges collapsed bin(s): %s", strings.Join(b.Collapsed, ", ")))
	}
	if !norm.Defined {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s undefined: max equals min (%.4g)", dataset.ColNormalized, norm.Max))
	}
	return s, nil
}

// Markdown renders a compact report suitable for standalone docs.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d", s.Rows))
	if s.Clean.InputRows > 0 {
		b.WriteString(fmt.Sprintf(" (read %d)", s.Clean.InputRows))
	}
	b.WriteString("\n")

	if s.Binning != nil {
		b.WriteString("\n[CATEGORIES]\n")
		b.WriteString(fmt.Sprintf("Edges: %s\n", formatEdges(s.Binning.Edges)))
		writeCounts(&b, s.Categories)
	}
	b.WriteString("\n[AREA TYPES]\n")
	writeCounts(&b, s.AreaTypes)
	b.WriteString("\n[RELIGIONS]\n")
	writeCounts(&b, s.Religions)

	b.WriteString("\n[TOTAL PERSONS]\n")
	b.WriteString(fmt.Sprintf("- mean: %.0f\n", Round(s.Persons.Mean)))
	b.WriteString(fmt.Sprintf("- median: %.0f\n", Round(s.Persons.Median)))
	b.WriteString(fmt.Sprintf("- std (sample): %.0f\n", Round(s.Persons.Std)))
	b.WriteString(fmt.Sprintf("- min %.4g, max %.4g\n", s.Persons.Min, s.Persons.Max))

	b.WriteString("\n[AGE GROUPS]\n")
	b.WriteString(strings.Join(s.AgeGroups, ", "))
	b.WriteString("\n")

	if len(s.TopAreas) > 0 {
		b.WriteString("\n[TOP AREAS]\n")
		for _, a := range s.TopAreas {
			b.WriteString(fmt.Sprintf("- %s: %.0f\n", safeVal(a.Key), a.Total))
		}
	}
	if s.Corr != nil && len(s.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(s.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if math.IsNaN(s.Corr.Values[i][j]) {
					continue
				}
				pairs = append(pairs, pr{A: s.Corr.Columns[i], B: s.Corr.Columns[j], R: s.Corr.Values[i][j]})
			}
		}
		sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].R) > math.Abs(pairs[j].R) })
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(s.Head) > 0 {
		b.WriteString("\n[HEAD]\n")
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", dataset.ColTotalPersons, dataset.ColInThousands, dataset.ColNormalized))
		b.WriteString("| --- | --- | --- |\n")
		for _, r := range s.Head {
			b.WriteString(fmt.Sprintf("| %g | %g | %s |\n", r.TotalPersons, r.InThousands, FormatNormalized(r.Normalized)))
		}
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatNormalized prints a normalized value, or "undefined" for NaN.
func FormatNormalized(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.6f", v)
}

func writeCounts(b *strings.Builder, counts []CategoryCount) {
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
	}
}

func formatEdges(edges []float64) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("%g", e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
