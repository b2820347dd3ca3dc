package wareki

import (
	"errors"
	"fmt"
)

// Seireki identifies the Gregorian calendar in a Representation.
const (
	Seireki      = "seireki"
	SeirekiLabel = "西暦"
)

// Representation is a year expressed in one calendar.
type Representation struct {
	// Calendar is Seireki or an era key.
	Calendar string `json:"calendar" yaml:"calendar"`
	Label    string `json:"label" yaml:"label"`
	Year     int    `json:"year" yaml:"year"`
	// Reference marks an era that had already ended by the target year.
	Reference bool   `json:"reference" yaml:"reference"`
	Text      string `json:"text" yaml:"text"`
}

func newRepresentation(calendar, label string, year int, reference bool) Representation {
	text := fmt.Sprintf("%s%d年", label, year)
	if reference {
		text = "(" + text + ")"
	}
	return Representation{
		Calendar:  calendar,
		Label:     label,
		Year:      year,
		Reference: reference,
		Text:      text,
	}
}

// Convert expresses a Gregorian year in the Gregorian calendar and in every
// era that had begun by then, in table order. Eras that had already ended
// are still counted on from their start and flagged as references.
func (t *Table) Convert(year int) []Representation {
	out := make([]Representation, 0, len(t.eras)+1)
	out = append(out, newRepresentation(Seireki, SeirekiLabel, year, false))

	for _, e := range t.eras {
		if !e.Began(year) {
			continue
		}
		out = append(out, newRepresentation(e.Key, e.Label, e.Year(year), e.Ended(year)))
	}
	return out
}

// Calc returns the display strings of Convert.
func (t *Table) Calc(year int) []string {
	reps := t.Convert(year)
	out := make([]string, len(reps))
	for i, r := range reps {
		out[i] = r.Text
	}
	return out
}

// Search parses input and converts the result. Unparseable input yields an
// empty, non-nil list.
func (t *Table) Search(input string) []string {
	year, err := t.ParseYear(input)
	if err != nil {
		return []string{}
	}
	return t.Calc(year)
}

// Conversion is the outcome of converting one query.
type Conversion struct {
	Query   string           `json:"query" yaml:"query"`
	Year    int              `json:"year,omitempty" yaml:"year,omitempty"`
	Results []Representation `json:"results" yaml:"results"`
	Err     error            `json:"-" yaml:"-"`
}

// OK reports whether the query was parsed.
func (c Conversion) OK() bool {
	return c.Err == nil
}

// Resolve parses and converts a query, keeping the parse error.
func (t *Table) Resolve(query string) Conversion {
	year, err := t.ParseYear(query)
	if err != nil {
		return Conversion{Query: query, Results: []Representation{}, Err: err}
	}
	return Conversion{Query: query, Year: year, Results: t.Convert(year)}
}

// IsUnparseable reports whether err came from an unparseable query.
func IsUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseable)
}

// Convert expresses year using the built-in table.
func Convert(year int) []Representation { return Default.Convert(year) }

// Calc returns the display strings for year using the built-in table.
func Calc(year int) []string { return Default.Calc(year) }

// Search parses and converts input using the built-in table.
func Search(input string) []string { return Default.Search(input) }

// Resolve parses and converts query using the built-in table.
func Resolve(query string) Conversion { return Default.Resolve(query) }
