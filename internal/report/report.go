// Package report prints analysis results to the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/census-cli/internal/analysis"
	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/render"
)

// Printer writes results to Out and diagnostics to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer

	heading *color.Color
	warn    *color.Color
	ok      *color.Color
}

// New returns a Printer. Colors are disabled when useColor is false.
func New(out, errOut io.Writer, useColor bool) *Printer {
	p := &Printer{
		Out:     out,
		Err:     errOut,
		heading: color.New(color.FgCyan, color.Bold),
		warn:    color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
	}
	if !useColor {
		p.heading.DisableColor()
		p.warn.DisableColor()
		p.ok.DisableColor()
	}
	return p
}

func (p *Printer) section(title string) {
	p.heading.Fprintln(p.Out, "\n"+title)
}

func (p *Printer) table(header []string, rows [][]string) {
	t := tablewriter.NewWriter(p.Out)
	t.SetAutoFormatHeaders(false)
	t.SetHeader(header)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.AppendBulk(rows)
	t.Render()
}

func (p *Printer) counts(name string, counts []analysis.CategoryCount) {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
	}
	p.table([]string{name, "Count"}, rows)
}

// Summary prints the summary in pipeline order: category counts, frequency
// tables, Total_Persons statistics, age groups and the derived-column previews.
func (p *Printer) Summary(s *analysis.Summary) {
	fmt.Fprintf(p.Out, "Dataset: %s (%d rows)\n", s.Name, s.Rows)

	p.section("Categories:")
	p.counts(dataset.ColCategory, s.Categories)

	p.section("Count of Area Types:")
	p.counts(dataset.ColAreaType, s.AreaTypes)

	p.section("Count of Religion Categories:")
	p.counts(dataset.ColReligion, s.Religions)

	fmt.Fprintf(p.Out, "\nMean Total Persons: %.0f\n", analysis.Round(s.Persons.Mean))
	fmt.Fprintf(p.Out, "Median Total Persons: %.0f\n", analysis.Round(s.Persons.Median))
	fmt.Fprintf(p.Out, "Age Groups Present: [%s]\n", strings.Join(s.AgeGroups, ", "))
	fmt.Fprintf(p.Out, "\nStandard Deviation of Total Persons: %.0f\n", analysis.Round(s.Persons.Std))

	p.section(fmt.Sprintf("Updated table with '%s':", dataset.ColInThousands))
	rows := make([][]string, 0, len(s.Head))
	for i, r := range s.Head {
		rows = append(rows, []string{strconv.Itoa(i), formatFloat(r.TotalPersons), formatFloat(r.InThousands)})
	}
	p.table([]string{"", dataset.ColTotalPersons, dataset.ColInThousands}, rows)

	p.section(fmt.Sprintf("Normalized '%s' column:", dataset.ColTotalPersons))
	rows = rows[:0]
	for i, r := range s.NormalizedHead {
		rows = append(rows, []string{strconv.Itoa(i), formatFloat(r.TotalPersons), analysis.FormatNormalized(r.Normalized)})
	}
	p.table([]string{"", dataset.ColTotalPersons, dataset.ColNormalized}, rows)

	if len(s.TopAreas) > 0 {
		p.section(fmt.Sprintf("Top %d Areas by %s:", len(s.TopAreas), dataset.ColTotalPersons))
		rows = rows[:0]
		for _, a := range s.TopAreas {
			rows = append(rows, []string{a.Key, formatFloat(a.Total)})
		}
		p.table([]string{dataset.ColArea, dataset.ColTotalPersons}, rows)
	}

	for _, w := range s.Warnings {
		p.warn.Fprintln(p.Err, "⚠ Note:", w)
	}
}

// Cleaning prints what the Cleaner removed to the diagnostic stream.
func (p *Printer) Cleaning(st dataset.CleanStats, coercionDropped int) {
	fmt.Fprintf(p.Err, "Read %d rows, kept %d", st.InputRows, st.OutputRows-coercionDropped)
	var parts []string
	if st.EmptyRows > 0 {
		parts = append(parts, fmt.Sprintf("%d empty", st.EmptyRows))
	}
	if st.MissingKeyRows > 0 {
		parts = append(parts, fmt.Sprintf("%d missing key fields", st.MissingKeyRows))
	}
	if st.CoercedCells > 0 {
		parts = append(parts, fmt.Sprintf("%d non-numeric %s", st.CoercedCells, dataset.ColTotalPersons))
	}
	if st.IncompleteRows > 0 {
		parts = append(parts, fmt.Sprintf("%d incomplete", st.IncompleteRows))
	}
	if coercionDropped > 0 {
		parts = append(parts, fmt.Sprintf("%d invalid values", coercionDropped))
	}
	if len(parts) > 0 {
		fmt.Fprintf(p.Err, " (dropped: %s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(p.Err)
}

// Charts reports written charts on Out and skipped ones on Err.
func (p *Printer) Charts(images []*render.Image, errs []error) {
	for _, img := range images {
		if img.Path != "" {
			p.ok.Fprintf(p.Out, "✓ Chart %s written to %s\n", img.Name, img.Path)
		}
	}
	for _, err := range errs {
		p.warn.Fprintln(p.Err, "⚠ Warning:", err)
	}
}

// Catalog lists chart specs.
func (p *Printer) Catalog(specs []render.Spec) {
	rows := make([][]string, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, []string{s.Name, string(s.Kind), s.Title})
	}
	p.table([]string{"Name", "Kind", "Title"}, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
