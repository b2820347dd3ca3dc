// Package wareki converts between Gregorian (seireki) years and Japanese
// era-based (wareki) years.
//
// The era table is an ordered, immutable list, newest era first. That order
// drives both parse priority and the order of converted rows.
package wareki

import (
	"errors"
	"fmt"
	"slices"
)

// Ongoing is the End value of the current era, which has no end year yet.
const Ongoing = 0

// Era is a named span of calendar years.
type Era struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	// Start is the Gregorian year of era year 1.
	Start int `json:"start" yaml:"start"`
	// End is the Gregorian year the era ended in, or Ongoing.
	End     int      `json:"end,omitempty" yaml:"end,omitempty"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// IsOngoing reports whether the era is the open-ended current era.
func (e Era) IsOngoing() bool {
	return e.End == Ongoing
}

// Began reports whether the era had started by the given Gregorian year.
func (e Era) Began(year int) bool {
	return year >= e.Start
}

// Ended reports whether the era was already over in the given Gregorian year.
// The end year itself still belongs to the era.
func (e Era) Ended(year int) bool {
	return !e.IsOngoing() && year > e.End
}

// Year returns the era year of a Gregorian year, counting on past the era's
// end. No range check is applied.
func (e Era) Year(gregorian int) int {
	return gregorian - e.Start + 1
}

// Gregorian returns the Gregorian year of an era year.
func (e Era) Gregorian(eraYear int) int {
	return e.Start + eraYear - 1
}

func (e Era) clone() Era {
	e.Aliases = slices.Clone(e.Aliases)
	return e
}

// builtin is the era table from Meiji onwards.
var builtin = []Era{
	{Key: "reiwa", Label: "令和", Start: 2019, End: Ongoing, Aliases: []string{"令和", "令", "R", "r"}},
	{Key: "heisei", Label: "平成", Start: 1989, End: 2019, Aliases: []string{"平成", "平", "H", "h"}},
	{Key: "showa", Label: "昭和", Start: 1926, End: 1989, Aliases: []string{"昭和", "昭", "S", "s"}},
	{Key: "taisho", Label: "大正", Start: 1912, End: 1926, Aliases: []string{"大正", "大", "T", "t"}},
	{Key: "meiji", Label: "明治", Start: 1868, End: 1912, Aliases: []string{"明治", "明", "M", "m"}},
}

// Table errors.
var (
	ErrEmptyTable      = errors.New("era table is empty")
	ErrDuplicateKey    = errors.New("duplicate era key")
	ErrDuplicateAlias  = errors.New("alias shared by more than one era")
	ErrOngoingCount    = errors.New("era table must have exactly one ongoing era")
	ErrEndBeforeStart  = errors.New("era ends before it starts")
	ErrMissingAliases  = errors.New("era has no aliases")
	ErrEmptyAlias      = errors.New("era alias is empty")
	ErrMissingEraField = errors.New("era is missing key or label")
)

// Validate checks the structural invariants of an era table: unique keys,
// pairwise disjoint aliases, one ongoing era and End >= Start for the rest.
// All violations are reported together.
func Validate(eras []Era) error {
	if len(eras) == 0 {
		return ErrEmptyTable
	}

	var errs []error
	keys := make(map[string]bool, len(eras))
	owners := make(map[string]string)
	ongoing := 0

	for _, e := range eras {
		if e.Key == "" || e.Label == "" {
			errs = append(errs, fmt.Errorf("%w: %+v", ErrMissingEraField, e))
		}
		if keys[e.Key] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key))
		}
		keys[e.Key] = true

		if e.IsOngoing() {
			ongoing++
		} else if e.End < e.Start {
			errs = append(errs, fmt.Errorf("%w: %s (%d-%d)", ErrEndBeforeStart, e.Key, e.Start, e.End))
		}

		if len(e.Aliases) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingAliases, e.Key))
		}
		for _, a := range e.Aliases {
			if a == "" {
				errs = append(errs, fmt.Errorf("%w: %s", ErrEmptyAlias, e.Key))
				continue
			}
			if owner, ok := owners[a]; ok && owner != e.Key {
				errs = append(errs, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateAlias, a, owner, e.Key))
				continue
			}
			owners[a] = e.Key
		}
	}

	if ongoing != 1 {
		errs = append(errs, fmt.Errorf("%w: found %d", ErrOngoingCount, ongoing))
	}

	return errors.Join(errs...)
}
