package web

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/JonMunkholm/popdash/internal/export"
	"github.com/JonMunkholm/popdash/internal/views"
)

// CountriesResponse lists the selectable countries.
type CountriesResponse struct {
	SnapshotID string          `json:"snapshot_id"`
	Countries  []string        `json:"countries"`
	Default    views.Selection `json:"default"`
}

// HealthResponse reports whether the dataset is usable.
type HealthResponse struct {
	Status     string `json:"status"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Countries  int    `json:"countries,omitempty"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (s *Server) handleAPIGlobal(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, views.GlobalOverview(snap))
}

func (s *Server) handleAPICountries(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	catalog := snap.Catalog()
	s.writeJSON(w, r, http.StatusOK, CountriesResponse{
		SnapshotID: snap.ID.String(),
		Countries:  catalog,
		Default:    views.DefaultSelection(catalog),
	})
}

func (s *Server) handleAPICompare(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	v, err := comparison(snap, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

// handleExportComparison downloads the full joined table as a workbook.
func (s *Server) handleExportComparison(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	v, err := comparison(snap, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteComparisonXLSX(&buf, v); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": export.FileName(v.Selection)}))
	w.Write(buf.Bytes())
}

// handleHealth does not trigger a load; it reports the current state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	done, err := s.source.Ready()
	switch {
	case !done:
		s.writeJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "loading"})
	case err != nil:
		msg := MapError(err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Code:    msg.Code,
			Message: msg.Message,
		})
	default:
		snap, err := s.source.Snapshot(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, HealthResponse{
			Status:     "ok",
			SnapshotID: snap.ID.String(),
			Rows:       snap.Len(),
			Countries:  len(snap.Catalog()),
		})
	}
}
