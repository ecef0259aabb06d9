package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/census-cli/internal/parser"
)

func TestReadFileCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(p, []byte("a,b,c\n1,2\n\"x,y\",3,4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := parser.ReadFile(p, parser.Options{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if len(rows[1]) != 2 {
		t.Fatalf("short row should keep its length, got %#v", rows[1])
	}
	if rows[2][0] != "x,y" {
		t.Fatalf("quoted cell = %q", rows[2][0])
	}
}

func TestReadFileTSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.tsv")
	if err := os.WriteFile(p, []byte("a\tb\n1\t2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := parser.ReadFile(p, parser.Options{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "2" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestReadFileXLSXBySheet(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), "Meta"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	_ = f.SetCellValue("Meta", "A1", "notes")
	_ = f.SetCellValue("Data", "A1", "Persons")
	_ = f.SetCellValue("Data", "A2", 1234.5)
	p := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows, err := parser.ReadFile(p, parser.Options{SheetName: "data"})
	if err != nil {
		t.Fatalf("read by name: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "1234.5" {
		t.Fatalf("unexpected rows: %#v", rows)
	}

	rows, err = parser.ReadFile(p, parser.Options{SheetIndex: 1})
	if err != nil {
		t.Fatalf("read by index: %v", err)
	}
	if rows[0][0] != "notes" {
		t.Fatalf("index 1 should be Meta, got %#v", rows)
	}

	if _, err := parser.ReadFile(p, parser.Options{SheetName: "missing"}); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
	if _, err := parser.ReadFile(p, parser.Options{SheetIndex: 9}); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
}

func TestReadFileUnsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.docx")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := parser.ReadFile(p, parser.Options{})
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := parser.ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"), parser.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"census.xlsx": true,
		"CENSUS.XLSX": true,
		"a.csv":       true,
		"a.tsv":       true,
		"notes.txt":   false,
		"census":      false,
	} {
		if got := parser.Supported(name); got != want {
			t.Fatalf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}
