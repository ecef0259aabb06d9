package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/census-cli/internal/parser"
)

// DefaultSkipRows is the number of title rows census workbooks carry above the header.
const DefaultSkipRows = 3

// LoadOptions controls how a source file becomes a Frame.
type LoadOptions struct {
	// SkipRows leading rows are discarded; the next row is the header.
	SkipRows int
	parser.Options
}

// DefaultLoadOptions returns options for census workbooks.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SkipRows: DefaultSkipRows, Options: parser.Options{SheetIndex: 1}}
}

// Load reads the source file into a Frame. The file is fully materialized and
// closed before Load returns. Any failure is a *LoadError.
func Load(path string, opt LoadOptions) (*Frame, error) {
	if opt.SkipRows < 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("negative skip rows: %d", opt.SkipRows)}
	}
	grid, err := parser.ReadFile(path, opt.Options)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(grid) <= opt.SkipRows {
		return nil, &LoadError{Path: path, Err: ErrNoRows}
	}
	grid = grid[opt.SkipRows:]
	f := FromGrid(grid[0], grid[1:])
	if err := f.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// FromGrid builds a Frame from a header row and data rows. Rows are padded to a
// common width, missing markers become NA, blank header cells become
// "Unnamed: <index>" and repeated names get ".1", ".2" suffixes.
func FromGrid(header []string, rows [][]string) *Frame {
	width := len(header)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return NewFrame(headerNames(header, width), rows)
}

func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) && !IsMissing(header[i]) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}
