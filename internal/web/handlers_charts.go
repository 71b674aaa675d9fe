package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/popdash/internal/chart"
	"github.com/JonMunkholm/popdash/internal/logging"
	"github.com/JonMunkholm/popdash/internal/views"
)

func (s *Server) handlePopulationSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writeSVG(w, r, views.PopulationChart(snap.World()))
}

// handleMortalitySVG needs no dataset: the series is a fixed table.
func (s *Server) handleMortalitySVG(w http.ResponseWriter, r *http.Request) {
	s.writeSVG(w, r, views.MortalityChart(views.MortalitySeries()))
}

func (s *Server) handleComparisonSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	v, err := comparison(snap, r)
	switch {
	case errors.Is(err, errNoCountries):
		s.writeSVG(w, r, views.ComparisonChart(nil))
	case err != nil:
		s.respondError(w, r, err)
	default:
		s.writeSVG(w, r, v.Chart)
	}
}

// writeSVG serves the rendered chart, or the placeholder when rendering fails.
func (s *Server) writeSVG(w http.ResponseWriter, r *http.Request, spec chart.Spec) {
	var buf bytes.Buffer
	if err := chart.Render(&buf, spec); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "chart render failed", err,
			slog.String("chart", spec.Name))
		buf.Reset()
		if err := chart.Placeholder(&buf, spec); err != nil {
			s.respondError(w, r, err)
			return
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// handleAPIChart returns a chart as a Vega-Lite document.
func (s *Server) handleAPIChart(w http.ResponseWriter, r *http.Request) {
	var spec chart.Spec

	switch chi.URLParam(r, "name") {
	case views.ChartMortality:
		spec = views.MortalityChart(views.MortalitySeries())
	case views.ChartPopulation:
		snap, ok := s.snapshot(w, r)
		if !ok {
			return
		}
		spec = views.PopulationChart(snap.World())
	case views.ChartComparison:
		snap, ok := s.snapshot(w, r)
		if !ok {
			return
		}
		v, err := comparison(snap, r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		spec = v.Chart
	default:
		s.respondError(w, r, errNotFound)
		return
	}

	data, err := spec.VegaLite()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
