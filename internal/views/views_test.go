package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/popdash/internal/dataset"
)

// buildSnapshot creates a dataset where each country covers [from, to].
func buildSnapshot(t *testing.T, spans map[string][2]int) *dataset.Snapshot {
	t.Helper()

	names := make([]string, 0, len(spans))
	for name := range spans {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Country Name,Country Code,Year,Value\n")
	for _, name := range names {
		span := spans[name]
		for y := span[0]; y <= span[1]; y++ {
			fmt.Fprintf(&b, "%s,%s,%d,%d\n", name, strings.ToUpper(name[:3]), y, len(name)*1000+y)
		}
	}

	snap, err := dataset.Parse(strings.NewReader(b.String()), "test")
	require.NoError(t, err)
	return snap
}

func TestTail(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{4, 5}, Tail(rows, 2))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Tail(rows, 10))
	assert.Equal(t, []int{}, Tail(rows, 0))
	assert.Equal(t, []int{}, Tail([]int(nil), 3))

	out := Tail(rows, 2)
	out[0] = 99
	assert.Equal(t, 4, rows[3], "tail must not alias its input")
}

func TestMortalitySeries(t *testing.T) {
	series := MortalitySeries()
	require.Len(t, series, 23)

	assert.Equal(t, 1800, series[0].Year)
	assert.Equal(t, 2020, series[len(series)-1].Year)
	assert.Equal(t, 25.0, series[0].RatePercent)
	assert.Equal(t, 1.8, series[len(series)-1].RatePercent)

	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Year+10, series[i].Year)
		assert.LessOrEqual(t, series[i].RatePercent, series[i-1].RatePercent,
			"rate rose between %d and %d", series[i-1].Year, series[i].Year)
	}

	want := []float64{25, 22, 20, 18, 15, 13, 12, 11, 10, 9, 8, 7, 6, 5, 5, 4, 3, 3, 2.5, 2.3, 2.1, 1.9, 1.8}
	for i, p := range series {
		assert.Equal(t, want[i], p.RatePercent, "year %d", p.Year)
	}

	series[0].RatePercent = 0
	assert.Equal(t, 25.0, MortalitySeries()[0].RatePercent, "callers get a fresh copy")
}

func TestGlobalOverview_Tail(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"World":  {1960, 2022},
		"Brazil": {1960, 2022},
	})

	view := GlobalOverview(snap)

	world := snap.World()
	require.Len(t, view.Tail, TailRows)
	assert.Equal(t, world[len(world)-TailRows:], view.Tail)
	assert.Equal(t, 2013, view.Tail[0].Year)
	assert.Equal(t, 2022, view.Tail[TailRows-1].Year)
	for _, r := range view.Tail {
		assert.Equal(t, "World", r.CountryName)
	}

	assert.Len(t, view.PopulationChart.Points, len(world))
	assert.Len(t, view.MortalityChart.Points, 23)
	assert.Equal(t, snap.ID.String(), view.SnapshotID)
}

func TestGlobalOverview_ShortWorldSeries(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{"World": {2020, 2022}})
	view := GlobalOverview(snap)
	assert.Len(t, view.Tail, 3)

	noWorld := buildSnapshot(t, map[string][2]int{"Peru": {2020, 2022}})
	view = GlobalOverview(noWorld)
	assert.Empty(t, view.Tail)
	assert.True(t, view.PopulationChart.Empty())
}

func TestDefaultSelection(t *testing.T) {
	tests := []struct {
		name    string
		catalog []string
		want    Selection
	}{
		{"both present", []string{"Argentina", "Brazil", "China", "India"}, Selection{"Brazil", "China"}},
		{"both missing", []string{"Chad", "Peru", "Togo"}, Selection{"Chad", "Peru"}},
		{"only brazil", []string{"Brazil", "Chad", "Peru"}, Selection{"Brazil", "Chad"}},
		{"only china", []string{"Chad", "China", "Peru"}, Selection{"Chad", "China"}},
		{"single entry", []string{"Peru"}, Selection{"Peru", "Peru"}},
		{"empty", nil, Selection{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSelection(tt.catalog))
		})
	}
}

func TestResolveSelection(t *testing.T) {
	catalog := []string{"Brazil", "China", "India"}

	sel, err := ResolveSelection(catalog, "", "")
	require.NoError(t, err)
	assert.Equal(t, Selection{"Brazil", "China"}, sel)

	sel, err = ResolveSelection(catalog, "", "India")
	require.NoError(t, err)
	assert.Equal(t, Selection{"Brazil", "India"}, sel)

	_, err = ResolveSelection(catalog, "Atlantis", "")
	assert.True(t, errors.Is(err, ErrUnknownCountry))
}

func TestJoinOnYear(t *testing.T) {
	a := []YearValue{{2000, 1}, {2001, 2}, {2002, 3}, {2003, 4}}
	b := []YearValue{{2003, 40}, {2001, 20}, {1999, 9}}

	rows := JoinOnYear(a, b)
	assert.Equal(t, []ComparisonRow{
		{Year: 2001, ValueA: 2, ValueB: 20},
		{Year: 2003, ValueA: 4, ValueB: 40},
	}, rows)
}

func TestJoinOnYear_Disjoint(t *testing.T) {
	rows := JoinOnYear([]YearValue{{1960, 1}}, []YearValue{{2020, 2}})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestJoinOnYear_DuplicateYears(t *testing.T) {
	rows := JoinOnYear(
		[]YearValue{{2000, 1}, {2000, 2}},
		[]YearValue{{2000, 10}, {2000, 20}},
	)
	require.Len(t, rows, 4)
	assert.Equal(t, ComparisonRow{Year: 2000, ValueA: 1, ValueB: 20}, rows[1])
	assert.Equal(t, ComparisonRow{Year: 2000, ValueA: 2, ValueB: 10}, rows[2])
}

func TestCountryComparison_YearIntersection(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"Brazil": {1960, 2000},
		"China":  {1990, 2022},
	})

	view, err := CountryComparison(snap, Selection{A: "Brazil", B: "China"})
	require.NoError(t, err)

	require.Len(t, view.Table.Rows, 11)
	for i, r := range view.Table.Rows {
		assert.Equal(t, 1990+i, r.Year)
	}
	assert.Len(t, view.Tail.Rows, TailRows)
	assert.Equal(t, 1991, view.Tail.Rows[0].Year)
	assert.Equal(t, []string{"Year", "Population - Brazil", "Population - China"}, view.Tail.Columns())

	assert.Len(t, view.Long, 41+33)
	assert.Equal(t, "Brazil", view.Long[0].Country)
	assert.Equal(t, "China", view.Long[len(view.Long)-1].Country)
	assert.Equal(t, []string{"Brazil", "China"}, view.Chart.SeriesNames())
}

func TestCountryComparison_Disjoint(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"Brazil": {1960, 1970},
		"China":  {2000, 2010},
	})

	view, err := CountryComparison(snap, Selection{A: "Brazil", B: "China"})
	require.NoError(t, err)
	assert.Empty(t, view.Table.Rows)
	assert.Empty(t, view.Tail.Rows)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rows":[]`)
}

func TestCountryComparison_Reselect(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"Brazil": {2000, 2005},
		"China":  {2000, 2005},
		"India":  {2003, 2008},
	})

	sel := DefaultSelection(snap.Catalog())
	require.Equal(t, Selection{"Brazil", "China"}, sel)

	first, err := CountryComparison(snap, sel)
	require.NoError(t, err)
	assert.Equal(t, "Population - China", first.Table.LabelB)

	sel.B = "India"
	second, err := CountryComparison(snap, sel)
	require.NoError(t, err)

	assert.Equal(t, "Population - Brazil", second.Table.LabelA)
	assert.Equal(t, "Population - India", second.Table.LabelB)
	require.Len(t, second.Table.Rows, 3)
	india := snap.Country("India")
	for i, r := range second.Table.Rows {
		assert.Equal(t, 2003+i, r.Year)
		assert.Equal(t, india[i].Value, r.ValueB)
	}
	for _, r := range second.Long {
		assert.NotEqual(t, "China", r.Country)
	}
	assert.Contains(t, second.Narrative.Items[1].String(), "India")
}

func TestCountryComparison_UnknownCountry(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{"Brazil": {2000, 2001}})

	_, err := CountryComparison(snap, Selection{A: "Brazil", B: "Atlantis"})
	assert.True(t, errors.Is(err, ErrUnknownCountry))
}

func TestViews_Idempotent(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"World":  {1960, 2022},
		"Brazil": {1960, 2022},
		"China":  {1970, 2022},
	})
	sel := Selection{A: "Brazil", B: "China"}

	encode := func() ([]byte, []byte, []byte) {
		g, err := json.Marshal(GlobalOverview(snap))
		require.NoError(t, err)
		view, err := CountryComparison(snap, sel)
		require.NoError(t, err)
		c, err := json.Marshal(view)
		require.NoError(t, err)
		spec, err := view.Chart.VegaLite()
		require.NoError(t, err)
		return g, c, spec
	}

	g1, c1, s1 := encode()
	g2, c2, s2 := encode()
	assert.Equal(t, g1, g2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, s1, s2)
}

func TestNarratives(t *testing.T) {
	n := comparisonNarrative("Chad", "Peru")
	require.Len(t, n.Items, 4)
	assert.Equal(t,
		"Chad and Peru show distinct population trajectories, shaped by historical, economic and social factors.",
		n.Items[0].String())
	assert.True(t, n.Items[0][0].Strong)

	g := globalNarrative()
	assert.Len(t, g.Items, 4)
	assert.NotEmpty(t, g.Info)
}

func TestCountryComparison_OffsetYearsSortAxis(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{
		"Aruba": {1990, 1992},
		"Chad":  {1960, 1962},
	})

	view, err := CountryComparison(snap, Selection{A: "Aruba", B: "Chad"})
	require.NoError(t, err)

	assert.Empty(t, view.Table.Rows)
	assert.Equal(t, []int{1960, 1961, 1962, 1990, 1991, 1992}, view.Chart.Categories())
}

func TestCountryComparison_SameCountrySingleYear(t *testing.T) {
	snap := buildSnapshot(t, map[string][2]int{"Tuvalu": {2000, 2000}})

	view, err := CountryComparison(snap, Selection{A: "Tuvalu", B: "Tuvalu"})
	require.NoError(t, err)

	require.Len(t, view.Table.Rows, 1)
	assert.Equal(t, []int{2000}, view.Chart.Categories())
	assert.Len(t, view.Long, 2)
}
