package wareki

import (
	"fmt"
	"slices"
)

// Table is an ordered, read-only era table together with its alias matcher.
type Table struct {
	eras    []Era
	matcher []aliasEntry
}

// aliasEntry binds one alias to the index of the era that owns it.
type aliasEntry struct {
	alias string
	era   int
}

// Default is the built-in table: Reiwa, Heisei, Showa, Taisho, Meiji.
var Default = MustTable(builtin)

// NewTable validates eras and builds a table over a private copy of them.
func NewTable(eras []Era) (*Table, error) {
	if err := Validate(eras); err != nil {
		return nil, fmt.Errorf("invalid era table: %w", err)
	}

	t := &Table{eras: make([]Era, len(eras))}
	for i, e := range eras {
		t.eras[i] = e.clone()
	}
	t.matcher = buildMatcher(t.eras)
	return t, nil
}

// MustTable is like NewTable but panics on an invalid table.
func MustTable(eras []Era) *Table {
	t, err := NewTable(eras)
	if err != nil {
		panic(err)
	}
	return t
}

// buildMatcher flattens the aliases in match priority order: eras in table
// order, and within one era the longest alias first so that "令和" wins over
// "令". Earlier eras still take priority over longer aliases of later eras.
func buildMatcher(eras []Era) []aliasEntry {
	var entries []aliasEntry
	for i, e := range eras {
		aliases := slices.Clone(e.Aliases)
		slices.SortStableFunc(aliases, func(a, b string) int {
			return len(b) - len(a)
		})
		for _, a := range aliases {
			entries = append(entries, aliasEntry{alias: a, era: i})
		}
	}
	return entries
}

// Eras returns a copy of the table in order, newest era first.
func (t *Table) Eras() []Era {
	out := make([]Era, len(t.eras))
	for i, e := range t.eras {
		out[i] = e.clone()
	}
	return out
}

// Era returns the era with the given key.
func (t *Table) Era(key string) (Era, bool) {
	for _, e := range t.eras {
		if e.Key == key {
			return e.clone(), true
		}
	}
	return Era{}, false
}

// EraForAlias returns the era owning alias, which must match exactly.
func (t *Table) EraForAlias(alias string) (Era, bool) {
	for _, e := range t.eras {
		if slices.Contains(e.Aliases, alias) {
			return e.clone(), true
		}
	}
	return Era{}, false
}

// Current returns the ongoing era.
func (t *Table) Current() Era {
	for _, e := range t.eras {
		if e.IsOngoing() {
			return e.clone()
		}
	}
	// NewTable guarantees exactly one ongoing era.
	panic("wareki: table has no ongoing era")
}

// Eras returns the built-in table in order.
func Eras() []Era { return Default.Eras() }

// EraByKey returns the built-in era with the given key.
func EraByKey(key string) (Era, bool) { return Default.Era(key) }

// EraForAlias returns the built-in era owning alias.
func EraForAlias(alias string) (Era, bool) { return Default.EraForAlias(alias) }

// Current returns the ongoing built-in era.
func Current() Era { return Default.Current() }
