package wareki

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnparseable is returned when input is neither a positive Gregorian year
// nor an era alias followed by digits.
var ErrUnparseable = errors.New("unparseable year")

// ParseYear resolves input to a Gregorian year.
//
// A positive base-10 integer is returned as is. Otherwise input must start
// with an era alias immediately followed by ASCII digits, read as the era
// year; anything after the digits is ignored. Era year 0 and years past the
// era's end are accepted and counted from the era's start.
func (t *Table) ParseYear(input string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && n > 0 {
		return n, nil
	}

	era, digits, ok := t.matchPrefix(input)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, input)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow can get here; digits is non-empty ASCII.
		return 0, fmt.Errorf("%w: %q: %w", ErrUnparseable, input, err)
	}
	// Start+n-1 must not wrap
	if offset := era.Start - 1; offset > 0 && n > math.MaxInt-offset {
		return 0, fmt.Errorf("%w: %q: %w", ErrUnparseable, input, strconv.ErrRange)
	}
	return era.Gregorian(n), nil
}

// matchPrefix finds the first alias in priority order that prefixes input
// and is directly followed by at least one digit.
func (t *Table) matchPrefix(input string) (Era, string, bool) {
	for _, m := range t.matcher {
		rest, ok := strings.CutPrefix(input, m.alias)
		if !ok {
			continue
		}
		if digits := leadingDigits(rest); digits != "" {
			return t.eras[m.era], digits, true
		}
	}
	return Era{}, "", false
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// ParseYear resolves input against the built-in table.
func ParseYear(input string) (int, error) {
	return Default.ParseYear(input)
}
