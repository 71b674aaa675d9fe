// Package templates holds the templ components for the dashboard pages.
//
// The .templ files are the sources; regenerate the _templ.go files with
// `templ generate` after editing them.
package templates

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/popdash/internal/chart"
	"github.com/JonMunkholm/popdash/internal/logging"
	"github.com/JonMunkholm/popdash/internal/views"
)

// Tab identifies the active dashboard tab.
type Tab string

const (
	TabGlobal  Tab = "global"
	TabCompare Tab = "compare"
	TabNone    Tab = ""
)

// PageMeta describes the loaded dataset in the page footer.
type PageMeta struct {
	Tab        Tab
	SnapshotID string
	Source     string
	LoadedAt   time.Time
}

// LoadedAtText is the load time in RFC 3339, UTC.
func (m PageMeta) LoadedAtText() string {
	return m.LoadedAt.UTC().Format(time.RFC3339)
}

// chartSVG inlines the rendered chart. A render failure is logged and
// replaced by the placeholder so the rest of the page still renders.
func chartSVG(spec chart.Spec) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := chart.Render(&buf, spec); err != nil {
			logging.LogError(logging.FromContext(ctx), "chart render failed", err,
				slog.String("chart", spec.Name))
			buf.Reset()
			if err := chart.Placeholder(&buf, spec); err != nil {
				return err
			}
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func formatYear(y int) string {
	return strconv.Itoa(y)
}

// formatValue prints a value as loaded, without grouping.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func exportURL(sel views.Selection) string {
	return "/api/compare/export.xlsx?" + url.Values{"a": {sel.A}, "b": {sel.B}}.Encode()
}
