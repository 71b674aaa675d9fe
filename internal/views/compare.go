package views

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonMunkholm/popdash/internal/chart"
	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/pkg/numfmt"
)

// Preferred default selections.
const (
	DefaultCountryA = "Brazil"
	DefaultCountryB = "China"
)

// ErrUnknownCountry is returned when a selection is not in the catalog.
var ErrUnknownCountry = errors.New("unknown country")

// Selection is the pair of countries being compared.
type Selection struct {
	A string `json:"country_a"`
	B string `json:"country_b"`
}

// DefaultSelection picks Brazil and China when present, otherwise the
// first and second catalog entries. A one-entry catalog selects that entry
// twice; an empty catalog yields an empty selection.
func DefaultSelection(catalog []string) Selection {
	var sel Selection

	switch {
	case contains(catalog, DefaultCountryA):
		sel.A = DefaultCountryA
	case len(catalog) > 0:
		sel.A = catalog[0]
	}

	switch {
	case contains(catalog, DefaultCountryB):
		sel.B = DefaultCountryB
	case len(catalog) > 1:
		sel.B = catalog[1]
	case len(catalog) == 1:
		sel.B = catalog[0]
	}

	return sel
}

// ResolveSelection fills empty choices with the defaults and rejects names
// that are not in the catalog.
func ResolveSelection(catalog []string, a, b string) (Selection, error) {
	sel := DefaultSelection(catalog)
	if a != "" {
		sel.A = a
	}
	if b != "" {
		sel.B = b
	}

	for _, name := range []string{sel.A, sel.B} {
		if name != "" && !contains(catalog, name) {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
		}
	}
	return sel, nil
}

func contains(catalog []string, name string) bool {
	for _, c := range catalog {
		if c == name {
			return true
		}
	}
	return false
}

// PopulationLabel is the column label for a country's population values.
func PopulationLabel(country string) string {
	return "Population - " + country
}

// YearValue is a record projected to the join columns.
type YearValue struct {
	Year  int
	Value float64
}

// Project keeps only Year and Value, in source order.
func Project(records []dataset.Record) []YearValue {
	out := make([]YearValue, len(records))
	for i, r := range records {
		out[i] = YearValue{Year: r.Year, Value: r.Value}
	}
	return out
}

// ComparisonRow is one joined year.
type ComparisonRow struct {
	Year   int
	ValueA float64
	ValueB float64
}

// ComparisonTable is the inner join of two countries on Year.
// Its column labels carry the country names.
type ComparisonTable struct {
	LabelA string
	LabelB string
	Rows   []ComparisonRow
}

// Columns returns the header row.
func (t ComparisonTable) Columns() []string {
	return []string{FieldYear, t.LabelA, t.LabelB}
}

// Tail returns a table holding the last n rows.
func (t ComparisonTable) Tail(n int) ComparisonTable {
	return ComparisonTable{LabelA: t.LabelA, LabelB: t.LabelB, Rows: Tail(t.Rows, n)}
}

// MarshalJSON writes the table as labelled columns plus positional rows.
func (t ComparisonTable) MarshalJSON() ([]byte, error) {
	rows := make([][3]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = [3]any{r.Year, r.ValueA, r.ValueB}
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    [][3]any `json:"rows"`
	}{t.Columns(), rows})
}

// JoinOnYear inner-joins a and b on Year. Rows follow a's order; a year
// repeated on either side yields every pairing, as a relational join does.
func JoinOnYear(a, b []YearValue) []ComparisonRow {
	byYear := make(map[int][]float64, len(b))
	for _, r := range b {
		byYear[r.Year] = append(byYear[r.Year], r.Value)
	}

	rows := make([]ComparisonRow, 0)
	for _, ra := range a {
		for _, vb := range byYear[ra.Year] {
			rows = append(rows, ComparisonRow{Year: ra.Year, ValueA: ra.Value, ValueB: vb})
		}
	}
	return rows
}

// LongRow is one country-year in the long-form chart table.
type LongRow struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
}

// LongForm concatenates a's rows then b's rows, labelling each with its country.
func LongForm(a, b []dataset.Record) []LongRow {
	out := make([]LongRow, 0, len(a)+len(b))
	for _, rs := range [][]dataset.Record{a, b} {
		for _, r := range rs {
			out = append(out, LongRow{Country: r.CountryName, Year: r.Year, Value: r.Value})
		}
	}
	return out
}

// ComparisonView is the two-country tab.
type ComparisonView struct {
	SnapshotID string          `json:"snapshot_id"`
	Selection  Selection       `json:"selection"`
	Catalog    []string        `json:"-"`
	Table      ComparisonTable `json:"-"`
	Tail       ComparisonTable `json:"tail"`
	Long       []LongRow       `json:"long"`
	Chart      chart.Spec      `json:"-"`
	Narrative  Narrative       `json:"narrative"`
}

// CountryComparison recomputes the comparison for sel from scratch.
// Countries with no overlapping years give an empty, valid table.
func CountryComparison(snap *dataset.Snapshot, sel Selection) (ComparisonView, error) {
	for _, name := range []string{sel.A, sel.B} {
		if !snap.HasCountry(name) {
			return ComparisonView{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
		}
	}

	seriesA := snap.Country(sel.A)
	seriesB := snap.Country(sel.B)

	table := ComparisonTable{
		LabelA: PopulationLabel(sel.A),
		LabelB: PopulationLabel(sel.B),
		Rows:   JoinOnYear(Project(seriesA), Project(seriesB)),
	}
	long := LongForm(seriesA, seriesB)

	return ComparisonView{
		SnapshotID: snap.ID.String(),
		Selection:  sel,
		Catalog:    snap.Catalog(),
		Table:      table,
		Tail:       table.Tail(TailRows),
		Long:       long,
		Chart:      ComparisonChart(long),
		Narrative:  comparisonNarrative(sel.A, sel.B),
	}, nil
}

// ComparisonChart is a multi-series line chart colored by country.
func ComparisonChart(long []LongRow) chart.Spec {
	points := make([]chart.Point, 0, len(long))
	for _, r := range long {
		points = append(points, chart.Point{Series: r.Country, X: r.Year, Y: r.Value})
	}
	return chart.Spec{
		Name:   ChartComparison,
		Title:  ComparisonChartName,
		Width:  chart.DefaultWidth,
		Height: chart.DefaultHeight,
		Mark:   chart.Mark{Type: chart.MarkLine, Point: true},
		X:      chart.Encoding{Field: FieldYear, Type: chart.Ordinal, Title: "Year"},
		Y:      chart.Encoding{Field: FieldValue, Type: chart.Quantitative, Title: "Population"},
		Color:  &chart.Encoding{Field: FieldCountry, Type: chart.Nominal, Title: FieldCountry},
		Tooltip: []chart.Tooltip{
			{Field: FieldCountry},
			{Field: FieldYear},
			{Field: FieldValue, Format: numfmt.ThousandsFormat},
		},
		Points: points,
	}
}
