package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRows indicates the source held no rows after the header offset.
var ErrNoRows = errors.New("no rows after header offset")

// LoadError indicates the source file was absent, unreadable, or empty.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError indicates required columns were never present, so the pipeline cannot proceed.
type SchemaError struct {
	Missing []string
	Have    []string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("required column(s) missing: %s", strings.Join(e.Missing, ", "))
	if len(e.Have) > 0 {
		msg += fmt.Sprintf(" (have: %s)", strings.Join(e.Have, ", "))
	}
	return msg
}

// CoercionError records a row dropped because a field did not hold a valid typed value.
// It is never fatal; the cleaner collects them for reporting.
type CoercionError struct {
	Row    int // zero-based index into the frame the row was dropped from
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d: column %s: cannot use %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
