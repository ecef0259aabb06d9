// Package datasettest builds census workbooks for tests.
package datasettest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Title rows above the header in the census workbook layout.
var titleRows = [][]any{
	{"C-03A: Religious community by age group"},
	{"India and States"},
	{},
}

// Header is the census header row: positional placeholders plus count columns.
// Column 7 sits between populated columns, is blank throughout and is dropped
// by cleaning.
var Header = []any{"", "", "", "", "Urban", "", "", "", "Persons", "Males", "Females"}

// Row builds a data row in the census layout.
func Row(area, areaType, religion, age string, persons, males, females any) []any {
	return []any{"01", "000", "00000", area, areaType, religion, age, nil, persons, males, females}
}

// CensusRows is a small, dirty census extract: one blank row, one row missing its
// religion, and one row whose person count is not numeric.
func CensusRows() [][]any {
	return [][]any{
		Row("INDIA", "Total", "Hindu", "All ages", 100, 52, 48),
		Row("INDIA", "Rural", "Hindu", "0-4", 10, 6, 4),
		{},
		Row("INDIA", "Urban", "Muslim", "5-9", 20, 11, 9),
		Row("KERALA", "Rural", "", "5-9", 7, 3, 4),
		Row("KERALA", "Urban", "Christian", "10-14", 30, 14, 16),
		Row("KERALA", "Total", "Muslim", "0-4", "n.a.", 1, 1),
		Row("GOA", "Urban", "Hindu", "10-14", 40, 20, 20),
	}
}

// WriteWorkbook writes title rows, the header, and rows to a new workbook under
// t.TempDir() and returns its path.
func WriteWorkbook(t testing.TB, header []any, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	all := append(append([][]any{}, titleRows...), header)
	all = append(all, rows...)
	for i, row := range all {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), "census.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteCensusWorkbook writes the default census extract.
func WriteCensusWorkbook(t testing.TB) string {
	t.Helper()
	return WriteWorkbook(t, Header, CensusRows())
}
