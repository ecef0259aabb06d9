package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Options selects what part of a source file is read.
type Options struct {
	// SheetName selects a workbook sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet position used when SheetName is empty.
	SheetIndex int
	// Delimiter for delimited text. If 0, chosen from the file extension.
	Delimiter rune
}

// Reader turns a tabular file into a grid of raw cell strings.
// Rows may have different lengths; callers pad as needed.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) ([][]string, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on filename and returns the raw grid.
func ReadFile(path string, opt Options) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Supported reports whether some registered reader handles the filename.
func Supported(filename string) bool {
	for _, r := range registry {
		if r.CanRead(filename) {
			return true
		}
	}
	return false
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported spreadsheet format")
