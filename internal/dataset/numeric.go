package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errNotNumber   = errors.New("not a number")
	errNotFinite   = errors.New("not a finite number")
	errNegative    = errors.New("negative count")
	errUnknownKind = errors.New("unknown area type")
	errNotText     = errors.New("missing text value")
)

// ErrNotNumeric and ErrNotText report a column lookup of the wrong kind or an unknown name.
var (
	ErrNotNumeric = errors.New("not a numeric column")
	ErrNotText    = errors.New("not a text column")
)

// NumberFormat describes how numeric cells are written.
type NumberFormat struct {
	// Decimal separator; 0 means '.'.
	Decimal rune
	// Thousands separator; 0 means none is accepted.
	Thousands rune
}

// ParseNumber converts a raw cell to a finite float64 using the given format.
// Unlike free-form parsing it rejects anything that is not a plain number once
// the configured separators are normalized.
func ParseNumber(s string, nf NumberFormat) (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, errNotNumber
	}
	dec := nf.Decimal
	if dec == 0 {
		dec = '.'
	}
	if nf.Thousands != 0 && nf.Thousands != dec {
		raw = strings.ReplaceAll(raw, string(nf.Thousands), "")
	}
	if dec != '.' {
		if strings.Contains(raw, ".") {
			return 0, errNotNumber
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errNotNumber, raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

// ParseCount parses a non-negative finite number.
func ParseCount(s string, nf NumberFormat) (float64, error) {
	f, err := ParseNumber(s, nf)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

// ParseSeparator maps a flag value to a separator rune.
func ParseSeparator(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ".", "dot":
		return '.', nil
	case ",", "comma":
		return ',', nil
	case " ", "space":
		return ' ', nil
	case "'", "apostrophe":
		return '\'', nil
	case "_", "underscore":
		return '_', nil
	}
	return 0, fmt.Errorf("unsupported separator: %q (use '.'|','|'space'|'apostrophe'|'underscore')", s)
}
