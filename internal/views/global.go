package views

import (
	"github.com/JonMunkholm/popdash/internal/chart"
	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/pkg/numfmt"
)

// Chart names, used in URLs and exported specs.
const (
	ChartPopulation = "population"
	ChartMortality  = "mortality"
	ChartComparison = "comparison"
)

// Field names used by the chart encodings.
const (
	FieldYear      = "Year"
	FieldValue     = "Value"
	FieldCountry   = "Country"
	FieldMortality = "Mortality Rate (%)"
)

// GlobalView is the global population and mortality tab.
type GlobalView struct {
	SnapshotID      string           `json:"snapshot_id"`
	Tail            []dataset.Record `json:"tail"`
	PopulationChart chart.Spec       `json:"-"`
	Mortality       []MortalityPoint `json:"mortality"`
	MortalityChart  chart.Spec       `json:"-"`
	Narrative       Narrative        `json:"narrative"`
}

// GlobalOverview builds the global tab from the World row-set and the
// static mortality table.
func GlobalOverview(snap *dataset.Snapshot) GlobalView {
	world := snap.World()
	mortality := MortalitySeries()

	return GlobalView{
		SnapshotID:      snap.ID.String(),
		Tail:            Tail(world, TailRows),
		PopulationChart: PopulationChart(world),
		Mortality:       mortality,
		MortalityChart:  MortalityChart(mortality),
		Narrative:       globalNarrative(),
	}
}

// PopulationChart is an area chart of the World series over an ordinal year axis.
func PopulationChart(world []dataset.Record) chart.Spec {
	points := make([]chart.Point, 0, len(world))
	for _, r := range world {
		points = append(points, chart.Point{X: r.Year, Y: r.Value})
	}
	return chart.Spec{
		Name:   ChartPopulation,
		Title:  WorldChartTitle,
		Width:  chart.DefaultWidth,
		Height: chart.DefaultHeight,
		Mark:   chart.Mark{Type: chart.MarkArea, Color: "lightblue"},
		X:      chart.Encoding{Field: FieldYear, Type: chart.Ordinal, Title: "Year"},
		Y:      chart.Encoding{Field: FieldValue, Type: chart.Quantitative, Title: "World Population"},
		Tooltip: []chart.Tooltip{
			{Field: FieldYear},
			{Field: FieldValue, Format: numfmt.ThousandsFormat},
		},
		Points: points,
	}
}

// MortalityChart is a line chart with point markers over the mortality table.
func MortalityChart(series []MortalityPoint) chart.Spec {
	points := make([]chart.Point, 0, len(series))
	for _, m := range series {
		points = append(points, chart.Point{X: m.Year, Y: m.RatePercent})
	}
	return chart.Spec{
		Name:   ChartMortality,
		Title:  MortalityChartTitle,
		Width:  chart.DefaultWidth,
		Height: chart.DefaultHeight,
		Mark:   chart.Mark{Type: chart.MarkLine, Point: true, Color: "crimson"},
		X:      chart.Encoding{Field: FieldYear, Type: chart.Ordinal, Title: "Year"},
		Y:      chart.Encoding{Field: FieldMortality, Type: chart.Quantitative, Title: FieldMortality},
		Tooltip: []chart.Tooltip{
			{Field: FieldYear},
			{Field: FieldMortality},
		},
		Points: points,
	}
}
