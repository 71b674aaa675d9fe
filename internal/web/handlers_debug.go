package web

import (
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/views"
	"github.com/JonMunkholm/popdash/internal/web/templates"
)

// dumpConfig keeps dumps stable between requests.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// snapshotSummary is what /debug/snapshot dumps.
type snapshotSummary struct {
	ID        string
	Source    string
	LoadedAt  time.Time
	Rows      int
	Countries int
	Default   views.Selection
	WorldTail []dataset.Record
}

// handleDebugSnapshot dumps the loaded snapshot's metadata. Mounted only
// when DEBUG_ENDPOINTS is set.
func (s *Server) handleDebugSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	catalog := snap.Catalog()
	summary := snapshotSummary{
		ID:        snap.ID.String(),
		Source:    snap.Source,
		LoadedAt:  snap.LoadedAt,
		Rows:      snap.Len(),
		Countries: len(catalog),
		Default:   views.DefaultSelection(catalog),
		WorldTail: views.Tail(snap.World(), 3),
	}

	s.renderPage(w, r, metaFor(snap, templates.TabNone),
		templates.DebugDump("Snapshot", dumpConfig.Sdump(summary)))
}
