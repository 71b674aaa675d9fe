// Package report renders the dashboard views as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/views"
	"github.com/JonMunkholm/popdash/pkg/numfmt"
)

var (
	colorText    = lipgloss.Color("#e6edf3")
	colorTextDim = lipgloss.Color("#8b949e")
	colorBlue    = lipgloss.Color("#58a6ff")
	colorDivider = lipgloss.Color("#30363d")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	numStyle    = cellStyle.Align(lipgloss.Right)
	dimStyle    = lipgloss.NewStyle().Foreground(colorTextDim)
)

// newTable builds a bordered table; columns listed in numeric are right-aligned.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDivider)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numStyle
			default:
				return cellStyle
			}
		})
}

// Global writes the World tail and the mortality table.
func Global(w io.Writer, v views.GlobalView) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(views.WorldTableTitle) + "\n")
	rows := make([][]string, 0, len(v.Tail))
	for _, r := range v.Tail {
		rows = append(rows, []string{r.CountryName, r.CountryCode, strconv.Itoa(r.Year), numfmt.Thousands(r.Value)})
	}
	headers := []string{dataset.ColumnCountryName, dataset.ColumnCountryCode, dataset.ColumnYear, dataset.ColumnValue}
	b.WriteString(newTable(headers, rows, 2, 3).Render() + "\n")

	b.WriteString(titleStyle.Render(views.MortalityChartTitle) + "\n")
	rows = rows[:0]
	for _, m := range v.Mortality {
		rows = append(rows, []string{strconv.Itoa(m.Year), strconv.FormatFloat(m.RatePercent, 'f', -1, 64)})
	}
	b.WriteString(newTable([]string{views.FieldYear, views.FieldMortality}, rows, 0, 1).Render() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Comparison writes the joined tail of a comparison.
func Comparison(w io.Writer, v views.ComparisonView) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s vs %s", views.ComparisonTitle, v.Selection.A, v.Selection.B)) + "\n")
	if len(v.Tail.Rows) == 0 {
		b.WriteString(dimStyle.Render("No overlapping years") + "\n")
	} else {
		rows := make([][]string, 0, len(v.Tail.Rows))
		for _, r := range v.Tail.Rows {
			rows = append(rows, []string{strconv.Itoa(r.Year), numfmt.Thousands(r.ValueA), numfmt.Thousands(r.ValueB)})
		}
		b.WriteString(newTable(v.Tail.Columns(), rows, 0, 1, 2).Render() + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Footer describes the snapshot the report was built from.
func Footer(w io.Writer, snap *dataset.Snapshot) error {
	_, err := fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d rows, %d countries, snapshot %s from %s",
		snap.Len(), len(snap.Catalog()), snap.ID, snap.Source)))
	return err
}
