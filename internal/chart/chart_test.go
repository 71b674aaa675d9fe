package chart

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
)

func populationSpec(points ...Point) Spec {
	return Spec{
		Name:    "population",
		Title:   "World population",
		Mark:    Mark{Type: MarkArea, Color: "lightblue"},
		X:       Encoding{Field: "Year", Type: Ordinal, Title: "Year"},
		Y:       Encoding{Field: "Value", Type: Quantitative, Title: "World population"},
		Tooltip: []Tooltip{{Field: "Year"}, {Field: "Value", Format: ",.0f"}},
		Points:  points,
	}
}

func comparisonSpec(points ...Point) Spec {
	return Spec{
		Name:    "comparison",
		Title:   "Population",
		Mark:    Mark{Type: MarkLine, Point: true},
		X:       Encoding{Field: "Year", Type: Ordinal, Title: "Year"},
		Y:       Encoding{Field: "Value", Type: Quantitative, Title: "Population"},
		Color:   &Encoding{Field: "Country", Type: Nominal},
		Tooltip: []Tooltip{{Field: "Country"}, {Field: "Year"}, {Field: "Value", Format: ",.0f"}},
		Points:  points,
	}
}

func TestSpec_CategoriesAndSeries(t *testing.T) {
	s := comparisonSpec(
		Point{Series: "Brazil", X: 1961, Y: 2},
		Point{Series: "Brazil", X: 1960, Y: 1},
		Point{Series: "China", X: 1960, Y: 3},
		Point{Series: "China", X: 1962, Y: 4},
	)

	assert.Equal(t, []int{1960, 1961, 1962}, s.Categories())
	assert.Equal(t, []string{"Brazil", "China"}, s.SeriesNames())
}

func TestSpec_VegaLite(t *testing.T) {
	s := comparisonSpec(
		Point{Series: "Brazil", X: 1960, Y: 72179235},
		Point{Series: "China", X: 1960, Y: 667070000},
	)

	raw, err := s.VegaLite()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, VegaLiteSchema, doc["$schema"])

	mark := doc["mark"].(map[string]any)
	assert.Equal(t, "line", mark["type"])
	assert.Equal(t, true, mark["point"])

	enc := doc["encoding"].(map[string]any)
	assert.Equal(t, "ordinal", enc["x"].(map[string]any)["type"])
	assert.Equal(t, "quantitative", enc["y"].(map[string]any)["type"])
	assert.Equal(t, "nominal", enc["color"].(map[string]any)["type"])

	tips := enc["tooltip"].([]any)
	require.Len(t, tips, 3)
	assert.Equal(t, ",.0f", tips[2].(map[string]any)["format"])

	values := doc["data"].(map[string]any)["values"].([]any)
	require.Len(t, values, 2)
	assert.Equal(t, "China", values[1].(map[string]any)["Country"])
}

func TestSpec_VegaLiteDeterministic(t *testing.T) {
	s := populationSpec(Point{X: 1960, Y: 3031564839}, Point{X: 1961, Y: 3072510552})

	a, err := s.VegaLite()
	require.NoError(t, err)
	b, err := s.VegaLite()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, string(a), `"color":"lightblue"`)
}

func TestSpec_Tooltips(t *testing.T) {
	s := comparisonSpec(Point{Series: "India", X: 2020, Y: 1396387127})
	assert.Equal(t, []string{"Country: India, Year: 2020, Value: 1,396,387,127"}, s.Tooltips())

	m := Spec{
		X:       Encoding{Field: "Year", Type: Ordinal},
		Y:       Encoding{Field: "MortalityRatePercent", Type: Quantitative},
		Tooltip: []Tooltip{{Field: "Year"}, {Field: "MortalityRatePercent"}},
		Points:  []Point{{X: 2000, Y: 2.1}},
	}
	assert.Equal(t, []string{"Year: 2000, MortalityRatePercent: 2.1"}, m.Tooltips())
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, populationSpec(
		Point{X: 1960, Y: 3031564839},
		Point{X: 1961, Y: 3072510552},
		Point{X: 1962, Y: 3126934985},
	))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"), "got %.40q", out)
	assert.Contains(t, out, "1961")
}

func TestRender_MultiSeries(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, comparisonSpec(
		Point{Series: "Brazil", X: 1960, Y: 72179235},
		Point{Series: "Brazil", X: 1961, Y: 74311338},
		Point{Series: "China", X: 1960, Y: 667070000},
		Point{Series: "China", X: 1961, Y: 660330000},
	))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "China")
}

func TestRender_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, populationSpec(Point{X: 2000, Y: 0})))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_SingleCategoryTwoSeries(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, comparisonSpec(
		Point{Series: "Atlantis", X: 1500, Y: 1000},
		Point{Series: "Atlantis", X: 1500, Y: 1000},
	))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1500")
}

func TestRender_OffsetYearRanges(t *testing.T) {
	s := comparisonSpec(
		Point{Series: "Aruba", X: 1990, Y: 62},
		Point{Series: "Aruba", X: 1991, Y: 64},
		Point{Series: "Chad", X: 1960, Y: 3000},
		Point{Series: "Chad", X: 1961, Y: 3100},
	)
	assert.Equal(t, []int{1960, 1961, 1990, 1991}, s.Categories())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Placeholder(&buf, populationSpec(Point{X: 2000, Y: 1})))
	assert.Contains(t, buf.String(), EmptyMessage)
	assert.Contains(t, buf.String(), `width="800"`)
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	s := comparisonSpec()
	s.Title = "A & B"

	require.NoError(t, Render(&buf, s))
	out := buf.String()
	assert.Contains(t, out, EmptyMessage)
	assert.Contains(t, out, "A &amp; B")
}

func labelled(ticks []gochart.Tick) []gochart.Tick {
	var out []gochart.Tick
	for _, t := range ticks {
		if t.Label != "" {
			out = append(out, t)
		}
	}
	return out
}

func TestOrdinalTicks(t *testing.T) {
	short := ordinalTicks([]int{2000, 2001, 2002})
	require.Len(t, short, 5)
	assert.Equal(t, -0.5, short[0].Value)
	assert.Equal(t, 2.5, short[4].Value)

	labels := labelled(short)
	require.Len(t, labels, 3)
	assert.Equal(t, "2001", labels[1].Label)
	assert.Equal(t, 1.0, labels[1].Value)

	years := make([]int, 64)
	for i := range years {
		years[i] = 1960 + i
	}
	long := labelled(ordinalTicks(years))
	assert.LessOrEqual(t, len(long), maxTickLabels)
	assert.Equal(t, "1960", long[0].Label)
}

func TestOrdinalTicks_SingleCategory(t *testing.T) {
	ticks := ordinalTicks([]int{2020})
	require.Len(t, ticks, 3)
	assert.Equal(t, -0.5, ticks[0].Value)
	assert.Equal(t, "2020", ticks[1].Label)
	assert.Equal(t, 0.5, ticks[2].Value)
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange([]Point{{Y: 25}, {Y: 1.8}})
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 26.25, hi, 1e-9)

	lo, hi = valueRange([]Point{{Y: 0}})
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, lo)
}
