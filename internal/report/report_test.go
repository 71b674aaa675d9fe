package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/views"
)

func testSnapshot() *dataset.Snapshot {
	return dataset.NewSnapshot("test", []dataset.Record{
		{CountryName: "World", CountryCode: "WLD", Year: 2019, Value: 7683789828},
		{CountryName: "World", CountryCode: "WLD", Year: 2020, Value: 7763932702},
		{CountryName: "Brazil", CountryCode: "BRA", Year: 2020, Value: 213196304},
		{CountryName: "China", CountryCode: "CHN", Year: 2020, Value: 1411100000},
		{CountryName: "Tuvalu", CountryCode: "TUV", Year: 1990, Value: 9000},
	})
}

func TestGlobal(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Global(&b, views.GlobalOverview(testSnapshot())))

	out := b.String()
	assert.Contains(t, out, views.WorldTableTitle)
	assert.Contains(t, out, "7,763,932,702")
	assert.Contains(t, out, views.FieldMortality)
	assert.Contains(t, out, "1800")
	assert.Contains(t, out, "1.8")
}

func TestComparison(t *testing.T) {
	v, err := views.CountryComparison(testSnapshot(), views.Selection{A: "Brazil", B: "China"})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, Comparison(&b, v))

	out := b.String()
	assert.Contains(t, out, "Population - Brazil")
	assert.Contains(t, out, "1,411,100,000")
}

func TestComparison_NoOverlap(t *testing.T) {
	v, err := views.CountryComparison(testSnapshot(), views.Selection{A: "Tuvalu", B: "China"})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, Comparison(&b, v))
	assert.Contains(t, b.String(), "No overlapping years")
}

func TestFooter(t *testing.T) {
	snap := testSnapshot()
	var b strings.Builder
	require.NoError(t, Footer(&b, snap))
	assert.Contains(t, b.String(), snap.ID.String())
	assert.Contains(t, b.String(), "5 rows")
}
