// Package views derives the dashboard's display-ready tables and charts.
//
// Every view is a pure function of an immutable [dataset.Snapshot] and the
// current country selections. Nothing is cached between calls: a selection
// change simply recomputes the view from scratch, and identical inputs give
// identical outputs.
//
//	global := views.GlobalOverview(snap)
//	sel, err := views.ResolveSelection(snap.Catalog(), "Brazil", "India")
//	cmp, err := views.CountryComparison(snap, sel)
package views

// TailRows is how many trailing rows the table widgets show.
const TailRows = 10

// Tail returns the last n elements of rows in their existing order.
// The result never aliases rows.
func Tail[T any](rows []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}
