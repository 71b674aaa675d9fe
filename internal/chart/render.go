package chart

import (
	"cmp"
	"fmt"
	"html"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/JonMunkholm/popdash/pkg/numfmt"
)

// Default canvas size, matching the dashboard layout.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// maxTickLabels bounds how many ordinal labels are drawn on the X axis.
const maxTickLabels = 16

// EmptyMessage is drawn when a spec has no points.
const EmptyMessage = "No data to display"

// namedColors covers the CSS names used by the dashboard.
var namedColors = map[string]string{
	"lightblue": "add8e6",
	"crimson":   "dc143c",
}

// palette is Vega's category10 scheme, used for the color channel.
var palette = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

// Render draws spec as SVG. A spec without points renders a placeholder
// instead of failing.
func Render(w io.Writer, spec Spec) error {
	width, height := canvasSize(spec)
	if spec.Empty() {
		return renderEmpty(w, spec.Title, width, height)
	}

	cats := spec.Categories()
	pos := make(map[int]float64, len(cats))
	for i, c := range cats {
		pos[c] = float64(i)
	}

	names := spec.SeriesNames()
	series := make([]gochart.Series, 0, len(names))
	for i, name := range names {
		var pts []Point
		for _, p := range spec.Points {
			if p.Series == name {
				pts = append(pts, p)
			}
		}
		slices.SortStableFunc(pts, func(a, b Point) int { return cmp.Compare(a.X, b.X) })

		s := gochart.ContinuousSeries{
			Name:  name,
			Style: seriesStyle(spec, i, len(cats)),
		}
		for _, p := range pts {
			s.XValues = append(s.XValues, pos[p.X])
			s.YValues = append(s.YValues, p.Y)
		}
		series = append(series, s)
	}

	yMin, yMax := valueRange(spec.Points)

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		XAxis: gochart.XAxis{
			Name:  spec.X.Title,
			Ticks: ordinalTicks(cats),
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(cats)) - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  spec.Y.Title,
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return axisLabel(f, yMax-yMin)
				}
				return fmt.Sprint(v)
			},
		},
		Series: series,
	}
	if spec.Color != nil {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render chart %s: %w", spec.Name, err)
	}
	return nil
}

// Placeholder draws the empty-chart SVG for spec regardless of its points.
func Placeholder(w io.Writer, spec Spec) error {
	width, height := canvasSize(spec)
	return renderEmpty(w, spec.Title, width, height)
}

func canvasSize(spec Spec) (int, int) {
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// seriesStyle picks the series colors. A single category has no line to
// draw, so it always gets a dot.
func seriesStyle(spec Spec, i, categories int) gochart.Style {
	hex := palette[i%len(palette)]
	if spec.Color == nil && spec.Mark.Color != "" {
		hex = colorHex(spec.Mark.Color)
	}
	col := drawing.ColorFromHex(hex)

	st := gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if spec.Mark.Type == MarkArea {
		st.FillColor = col.WithAlpha(180)
	}
	if spec.Mark.Point || categories < 2 {
		st.DotColor = col
		st.DotWidth = 3
	}
	return st
}

func colorHex(c string) string {
	if hex, ok := namedColors[strings.ToLower(c)]; ok {
		return hex
	}
	if strings.HasPrefix(c, "#") {
		return c[1:]
	}
	return palette[0]
}

// valueRange returns a Y range that always includes zero, like a
// quantitative Vega-Lite scale, with a little headroom.
func valueRange(points []Point) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}

// ordinalTicks labels category positions, thinning labels on long axes.
// go-chart derives the X range from the ticks, so unlabelled ticks at the
// band edges keep the range non-zero even for a single category.
func ordinalTicks(cats []int) []gochart.Tick {
	step := 1
	if len(cats) > maxTickLabels {
		step = int(math.Ceil(float64(len(cats)) / maxTickLabels))
	}
	ticks := make([]gochart.Tick, 0, len(cats)/step+3)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	for i := 0; i < len(cats); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: strconv.Itoa(cats[i])})
	}
	return append(ticks, gochart.Tick{Value: float64(len(cats)) - 0.5})
}

// axisLabel formats Y ticks; small ranges keep one decimal.
func axisLabel(v, span float64) string {
	if span < 10 {
		return numfmt.Format(v, ",.1f")
	}
	return numfmt.Thousands(v)
}

func renderEmpty(w io.Writer, title string, width, height int) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
		`<text x="50%%" y="24" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#666666">%s</text>`+
		`</svg>`,
		width, height, width, height, html.EscapeString(title), EmptyMessage)
	return err
}
