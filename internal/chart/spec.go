// Package chart describes dashboard charts declaratively and renders them.
//
// A [Spec] carries the data points together with their mark and encodings
// (ordinal X, quantitative Y, optional nominal color) and tooltip formats.
// The same spec is exported as a Vega-Lite document for the JSON API and
// drawn as SVG for the HTML pages.
package chart

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/popdash/pkg/numfmt"
)

// MarkType is the graphical mark used for the data.
type MarkType string

const (
	MarkArea MarkType = "area"
	MarkLine MarkType = "line"
)

// FieldType is how an encoding channel interprets its values.
type FieldType string

const (
	Ordinal      FieldType = "ordinal"
	Quantitative FieldType = "quantitative"
	Nominal      FieldType = "nominal"
)

// VegaLiteSchema is the schema URL written into exported specs.
const VegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Mark selects the mark and its fixed styling.
type Mark struct {
	Type  MarkType
	Point bool   // draw point markers on lines
	Color string // CSS color; ignored when a color channel is encoded
}

// Encoding binds a data field to a channel.
type Encoding struct {
	Field string
	Type  FieldType
	Title string
}

// Tooltip is one field shown on hover, with an optional d3 number format.
type Tooltip struct {
	Field  string
	Format string
}

// Point is one datum. X is the ordinal category (a year), Series the color
// category; Series is empty for single-series charts.
type Point struct {
	Series string
	X      int
	Y      float64
}

// Spec is a complete, renderable chart.
type Spec struct {
	Name    string
	Title   string
	Width   int
	Height  int
	Mark    Mark
	X       Encoding
	Y       Encoding
	Color   *Encoding
	Tooltip []Tooltip
	Points  []Point
}

// Empty reports whether there is nothing to plot.
func (s Spec) Empty() bool {
	return len(s.Points) == 0
}

// Categories returns the distinct X values in ascending order, the
// default sort of a Vega-Lite ordinal scale.
func (s Spec) Categories() []int {
	seen := make(map[int]bool, len(s.Points))
	var out []int
	for _, p := range s.Points {
		if !seen[p.X] {
			seen[p.X] = true
			out = append(out, p.X)
		}
	}
	slices.Sort(out)
	return out
}

// SeriesNames returns the distinct series in first-appearance order.
func (s Spec) SeriesNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.Points {
		if !seen[p.Series] {
			seen[p.Series] = true
			out = append(out, p.Series)
		}
	}
	return out
}

// row returns the datum for p keyed by encoding field names.
func (s Spec) row(p Point) map[string]any {
	r := map[string]any{
		s.X.Field: p.X,
		s.Y.Field: p.Y,
	}
	if s.Color != nil {
		r[s.Color.Field] = p.Series
	}
	return r
}

func (s Spec) fieldType(field string) FieldType {
	switch {
	case field == s.X.Field:
		return s.X.Type
	case field == s.Y.Field:
		return s.Y.Type
	case s.Color != nil && field == s.Color.Field:
		return s.Color.Type
	default:
		return Nominal
	}
}

// VegaLite returns the spec as a Vega-Lite v5 JSON document.
// Output is deterministic for a given spec.
func (s Spec) VegaLite() ([]byte, error) {
	values := make([]map[string]any, 0, len(s.Points))
	for _, p := range s.Points {
		values = append(values, s.row(p))
	}

	mark := map[string]any{"type": string(s.Mark.Type)}
	if s.Mark.Point {
		mark["point"] = true
	}
	if s.Mark.Color != "" && s.Color == nil {
		mark["color"] = s.Mark.Color
	}

	encoding := map[string]any{
		"x": channel(s.X),
		"y": channel(s.Y),
	}
	if s.Color != nil {
		encoding["color"] = channel(*s.Color)
	}
	if len(s.Tooltip) > 0 {
		tips := make([]map[string]any, 0, len(s.Tooltip))
		for _, t := range s.Tooltip {
			tip := map[string]any{"field": t.Field, "type": string(s.fieldType(t.Field))}
			if t.Format != "" {
				tip["format"] = t.Format
			}
			tips = append(tips, tip)
		}
		encoding["tooltip"] = tips
	}

	doc := map[string]any{
		"$schema":  VegaLiteSchema,
		"title":    s.Title,
		"width":    s.Width,
		"height":   s.Height,
		"data":     map[string]any{"values": values},
		"mark":     mark,
		"encoding": encoding,
	}
	return json.Marshal(doc)
}

func channel(e Encoding) map[string]any {
	c := map[string]any{"field": e.Field, "type": string(e.Type)}
	if e.Title != "" {
		c["title"] = e.Title
	}
	return c
}

// Tooltips returns the hover text for every point, in point order.
// Each line reads "Field: value" for the configured tooltip fields.
func (s Spec) Tooltips() []string {
	out := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		parts := make([]string, 0, len(s.Tooltip))
		for _, t := range s.Tooltip {
			parts = append(parts, t.Field+": "+s.formatField(p, t))
		}
		out = append(out, strings.Join(parts, ", "))
	}
	return out
}

func (s Spec) formatField(p Point, t Tooltip) string {
	switch {
	case t.Field == s.X.Field:
		return strconv.Itoa(p.X)
	case t.Field == s.Y.Field:
		return numfmt.Format(p.Y, t.Format)
	case s.Color != nil && t.Field == s.Color.Field:
		return p.Series
	default:
		return ""
	}
}
