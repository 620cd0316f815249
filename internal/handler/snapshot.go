package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// ListSnapshots handles GET /snapshots. Newest first.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := s.snapshots.List(r.Context())
	if err != nil {
		writeError(w, r, err, "snapshot not found")
		return
	}

	out := make([]Snapshot, len(infos))
	for i, info := range infos {
		out[i] = snapshotToResponse(info)
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveSnapshot handles POST /snapshots.
// The body is optional; without a name the packages go to packages.dat.
func (s *Server) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var body SaveSnapshotRequest
	if !decodeOptionalBody(w, r, &body) {
		return
	}

	info, err := s.snapshots.Save(r.Context(), body.Name)
	if err != nil {
		writeError(w, r, err, "snapshot not found")
		return
	}
	writeJSON(w, http.StatusCreated, snapshotToResponse(info))
}

// LoadSnapshot handles POST /snapshots/{name}/load.
// ?mode=replace|merge picks the restore mode; absent means the server default.
// A missing snapshot is 404, an unreadable one 502, and a snapshot that would
// double-book the live catalog 409. The catalog is unchanged on any error.
func (s *Server) LoadSnapshot(w http.ResponseWriter, r *http.Request) {
	mode := s.loadMode
	if v := r.URL.Query().Get("mode"); v != "" {
		m, err := domain.ParseLoadMode(v)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		mode = m
	}

	name := chi.URLParam(r, "name")
	report, err := s.snapshots.Load(r.Context(), name, mode)
	if err != nil {
		writeError(w, r, err, "snapshot not found")
		return
	}

	writeJSON(w, http.StatusOK, RestoreReport{
		Snapshot:               report.Snapshot,
		Mode:                   string(report.Mode),
		Loaded:                 report.Loaded,
		Skipped:                report.Skipped,
		Discarded:              report.Discarded,
		CustomersInserted:      report.CustomersInserted,
		AccommodationsInserted: nonNilInts(report.AccommodationsInserted),
	})
}

// --- mapping helpers --------------------------------------------------------

func snapshotToResponse(info domain.SnapshotInfo) Snapshot {
	return Snapshot{Name: info.Name, Size: info.Size, SavedAt: info.SavedAt}
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
