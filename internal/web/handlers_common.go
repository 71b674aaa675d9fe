package web

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/logging"
	"github.com/JonMunkholm/popdash/internal/views"
	"github.com/JonMunkholm/popdash/internal/web/templates"
)

// snapshot returns the shared dataset, writing the error response itself
// when the load failed.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*dataset.Snapshot, bool) {
	snap, err := s.source.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return nil, false
	}
	return snap, true
}

// comparison resolves the a/b query parameters and recomputes the view.
// An empty catalog yields errNoCountries.
func comparison(snap *dataset.Snapshot, r *http.Request) (views.ComparisonView, error) {
	q := r.URL.Query()
	sel, err := views.ResolveSelection(snap.Catalog(), q.Get("a"), q.Get("b"))
	if err != nil {
		return views.ComparisonView{}, err
	}
	if sel.A == "" || sel.B == "" {
		return views.ComparisonView{}, errNoCountries
	}

	v, err := views.CountryComparison(snap, sel)
	if err != nil {
		return views.ComparisonView{}, err
	}
	logging.WithFields(r.Context(), "country_a", sel.A, "country_b", sel.B).
		Debug("comparison computed", "joined_rows", len(v.Table.Rows), "long_rows", len(v.Long))
	return v, nil
}

// metaFor describes snap in the page footer.
func metaFor(snap *dataset.Snapshot, tab templates.Tab) templates.PageMeta {
	return templates.PageMeta{
		Tab:        tab,
		SnapshotID: snap.ID.String(),
		Source:     snap.Source,
		LoadedAt:   snap.LoadedAt,
	}
}

// renderPage renders body inside the layout. The page is buffered so a
// render failure still produces a proper error response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, meta templates.PageMeta, body templ.Component) {
	var buf bytes.Buffer
	if err := templates.Layout(meta, body).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// writeJSON encodes v as JSON and writes it to w.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
