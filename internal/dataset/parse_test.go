package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Country Name,Country Code,Year,Value
Brazil,BRA,1960,72179235
Brazil,BRA,1961,74311338
China,CHN,1960,667070000
World,WLD,1960,3031564839
China,CHN,1961,660330000
World,WLD,1961,3072510552
Aruba,ABW,1960,54608
`

func TestParse_Sample(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleCSV), "test")
	require.NoError(t, err)

	assert.Equal(t, 7, snap.Len())
	assert.Equal(t, "test", snap.Source)
	assert.Equal(t, []string{"Aruba", "Brazil", "China", "World"}, snap.Catalog())

	world := snap.World()
	require.Len(t, world, 2)
	assert.Equal(t, Record{CountryName: "World", CountryCode: "WLD", Year: 1960, Value: 3031564839}, world[0])
	assert.Equal(t, 1961, world[1].Year)

	china := snap.Country("China")
	require.Len(t, china, 2)
	assert.Equal(t, 1960, china[0].Year, "source order is kept")

	assert.True(t, snap.HasCountry("Aruba"))
	assert.False(t, snap.HasCountry("Atlantis"))
	assert.NotNil(t, snap.Country("Atlantis"))
	assert.Empty(t, snap.Country("Atlantis"))
}

func TestParse_ExtraAndReorderedColumns(t *testing.T) {
	input := "Year,Notes,Value,Country Name\n2000,x,10,Chad\n2001,y,11.5,Chad\n"

	snap, err := Parse(strings.NewReader(input), "test")
	require.NoError(t, err)

	chad := snap.Country("Chad")
	require.Len(t, chad, 2)
	assert.Equal(t, Record{CountryName: "Chad", Year: 2001, Value: 11.5}, chad[1])
}

func TestParse_BOM(t *testing.T) {
	input := "\xEF\xBB\xBFCountry Name,Year,Value\nPeru,1990,22000000\n"

	snap, err := Parse(strings.NewReader(input), "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"Peru"}, snap.Catalog())
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantCol  string
	}{
		{
			name:  "empty document",
			input: "",
		},
		{
			name:     "missing value column",
			input:    "Country Name,Year\nPeru,1990\n",
			wantLine: 1,
		},
		{
			name:     "bad year",
			input:    "Country Name,Year,Value\nPeru,19x0,1\n",
			wantLine: 2,
			wantCol:  ColumnYear,
		},
		{
			name:     "bad value",
			input:    "Country Name,Year,Value\nPeru,1990,1\nPeru,1991,lots\n",
			wantLine: 3,
			wantCol:  ColumnValue,
		},
		{
			name:     "empty country",
			input:    "Country Name,Year,Value\n,1990,1\n",
			wantLine: 2,
			wantCol:  ColumnCountryName,
		},
		{
			name:     "wrong field count",
			input:    "Country Name,Year,Value\nPeru,1990\n",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Parse(strings.NewReader(tt.input), "test")
			require.Error(t, err)
			assert.Nil(t, snap, "no partial snapshot")
			assert.True(t, errors.Is(err, ErrParse), "error should match ErrParse: %v", err)
			assert.False(t, errors.Is(err, ErrFetch))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantCol, perr.Column)
		})
	}
}

func TestSnapshot_IsImmutable(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleCSV), "test")
	require.NoError(t, err)

	recs := snap.Records()
	recs[0].Value = -1
	cat := snap.Catalog()
	cat[0] = "Nowhere"
	world := snap.World()
	world[0].Year = 0

	assert.Equal(t, float64(72179235), snap.Records()[0].Value)
	assert.Equal(t, "Aruba", snap.Catalog()[0])
	assert.Equal(t, 1960, snap.World()[0].Year)
}

func TestLimitReader(t *testing.T) {
	r := newLimitReader(strings.NewReader(strings.Repeat("x", 100)), 10)
	buf := make([]byte, 64)

	_, err := r.Read(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errTooLarge))
}
