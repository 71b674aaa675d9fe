package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/popdash/internal/views"
	"github.com/JonMunkholm/popdash/internal/web/templates"
)

// handleGlobal renders the global overview tab.
func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.renderPage(w, r, metaFor(snap, templates.TabGlobal), templates.GlobalTab(views.GlobalOverview(snap)))
}

// handleCompare renders the comparison tab for ?a=&b=, defaulting either
// side when it is missing. Each request recomputes the view from scratch.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	v, err := comparison(snap, r)
	switch {
	case errors.Is(err, errNoCountries):
		s.renderPage(w, r, metaFor(snap, templates.TabCompare), templates.CompareEmpty())
	case err != nil:
		s.respondError(w, r, err)
	default:
		s.renderPage(w, r, metaFor(snap, templates.TabCompare), templates.CompareTab(v))
	}
}
