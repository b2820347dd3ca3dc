package wareki

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2023", 2023},
		{"1", 1},
		{"+2023", 2023},
		{" 2023 ", 2023},
		{"R5", 2023},
		{"r5", 2023},
		{"令和5", 2023},
		{"令5", 2023},
		{"H30", 2018},
		{"平成31", 2019},
		{"S64", 1989},
		{"昭和1", 1926},
		{"T15", 1926},
		{"大正1", 1912},
		{"M45", 1912},
		{"明治1", 1868},
		{"H032", 2020},
		{"R5年", 2023},
		{"R5abc", 2023},
		{"R0", 2018},
		{"H100", 2088},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYearUnparseable(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"notaYear",
		"0",
		"-5",
		"R",
		"令和",
		"R-5",
		" R5",
		"X5",
		"5R",
		"Ｒ５",
		"R99999999999999999999999",
		"R9223372036854775807",
		"M9223372036854775800",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseYear(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseable)
			assert.True(t, IsUnparseable(err))
		})
	}
}

func TestParseYearEraYearOverflow(t *testing.T) {
	// 令和 starts in 2019, so the largest era year that fits is MaxInt-2018
	got, err := ParseYear("R" + strconv.Itoa(math.MaxInt-2018))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = ParseYear("R" + strconv.Itoa(math.MaxInt-2017))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseable)
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestParseYearPlainNumbersRoundTrip(t *testing.T) {
	for _, y := range []int{1, 7, 645, 1867, 1868, 1989, 2019, 2024, 10000} {
		got, err := ParseYear(strconv.Itoa(y))
		require.NoError(t, err)
		assert.Equal(t, y, got)
	}
}

func TestParseYearEveryAlias(t *testing.T) {
	for _, e := range Eras() {
		for _, alias := range e.Aliases {
			for _, n := range []int{1, 2, 10, 64} {
				input := alias + strconv.Itoa(n)
				got, err := ParseYear(input)
				require.NoError(t, err, input)
				assert.Equal(t, e.Start+n-1, got, input)
			}
		}
	}
}

func TestParseYearNormalizedInput(t *testing.T) {
	got, err := ParseYear(Normalize("　Ｒ５ "))
	require.NoError(t, err)
	assert.Equal(t, 2023, got)

	got, err = ParseYear(Normalize("令和５"))
	require.NoError(t, err)
	assert.Equal(t, 2023, got)
}

func TestMatcherPrefersLongerAliasWithinEra(t *testing.T) {
	// "AB" must win over "A" inside one era regardless of declaration order.
	table := MustTable([]Era{
		{Key: "x", Label: "X", Start: 2000, Aliases: []string{"A", "AB"}},
	})
	got, err := table.ParseYear("AB3")
	require.NoError(t, err)
	assert.Equal(t, 2002, got)
}

func TestMatcherEraOrderBeatsAliasLength(t *testing.T) {
	// An earlier era's short alias is tried before a later era's longer one.
	// When digits follow the short alias the later era is never reached.
	table := MustTable([]Era{
		{Key: "new", Label: "新", Start: 2000, Aliases: []string{"K"}},
		{Key: "old", Label: "旧", Start: 1900, End: 2000, Aliases: []string{"K1"}},
	})

	got, err := table.ParseYear("K15")
	require.NoError(t, err)
	assert.Equal(t, 2014, got, "K + 15 in the first era")

	// Without a digit after the short alias, matching falls through.
	table = MustTable([]Era{
		{Key: "new", Label: "新", Start: 2000, Aliases: []string{"K"}},
		{Key: "old", Label: "旧", Start: 1900, End: 2000, Aliases: []string{"KX"}},
	})
	got, err = table.ParseYear("KX5")
	require.NoError(t, err)
	assert.Equal(t, 1904, got)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"２０２３", "2023"},
		{"Ｈ３０", "H30"},
		{"ｈ３０", "h30"},
		{"令和５", "令和5"},
		{"　令和5　", "令和5"},
		{"  R5\t", "R5"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}
