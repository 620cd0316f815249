package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mtbuller-resort/internal/catalog"
	"github.com/pkordes/mtbuller-resort/internal/handler"
	"github.com/pkordes/mtbuller-resort/internal/repo"
	"github.com/pkordes/mtbuller-resort/internal/service"
)

// newResortHTTPHandler wires a seeded catalog, a file snapshot store in a
// temp dir and the real services, the same way main.go does.
func newResortHTTPHandler(t *testing.T, dir string) http.Handler {
	t.Helper()
	c := catalog.New()
	require.NoError(t, catalog.Seed(c))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	persistence := service.NewPersistenceService(c, repo.NewFileSnapshotRepo(dir), log)
	return handler.Handler(handler.NewServer(c, c, c, persistence, service.NewExportService(c)))
}

// TestResortFlow books a package, adds extras, saves, and restores the
// bookings into a freshly started server.
func TestResortFlow(t *testing.T) {
	dir := t.TempDir()
	h := newResortHTTPHandler(t, dir)

	rec := serve(h, http.MethodPost, "/customers", jsonBody(t, map[string]any{
		"name": "Ann", "email": "ann@example.com", "skill_level": "Intermediate",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	ann := decodeJSON[handler.Customer](t, rec)

	rec = serve(h, http.MethodPost, "/packages", jsonBody(t, map[string]any{
		"customer_id": ann.ID, "accommodation_id": 1, "start_date": "2025-07-01", "days": 4,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	pkg := decodeJSON[handler.TravelPackage](t, rec)

	// The same unit cannot be booked twice.
	rec = serve(h, http.MethodPost, "/customers", jsonBody(t, map[string]any{
		"name": "Bob", "email": "bob@example.com", "skill_level": "Expert",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	bob := decodeJSON[handler.Customer](t, rec)
	rec = serve(h, http.MethodPost, "/packages", jsonBody(t, map[string]any{
		"customer_id": bob.ID, "accommodation_id": 1, "start_date": "now", "days": 2,
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(h, http.MethodPost, "/packages/"+pkg.ID.String()+"/lessons", jsonBody(t, map[string]any{"count": 3}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Intermediate", decodeJSON[handler.Lessons](t, rec).SkillLevel)

	rec = serve(h, http.MethodGet, "/packages?missing=lift_pass", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeJSON[handler.PackageList](t, rec).Pagination.Total)

	rec = serve(h, http.MethodGet, "/customers?without_package=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	free := decodeJSON[handler.CustomerList](t, rec)
	require.Len(t, free.Data, 1)
	assert.Equal(t, bob.ID, free.Data[0].ID)

	rec = serve(h, http.MethodPost, "/snapshots", jsonBody(t, map[string]any{"name": "july"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	// A restarted server knows only the seed inventory.
	restarted := newResortHTTPHandler(t, dir)

	rec = serve(restarted, http.MethodPost, "/snapshots/missing/load", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(restarted, http.MethodPost, "/snapshots/july/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeJSON[handler.RestoreReport](t, rec)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 1, report.CustomersInserted)

	rec = serve(restarted, http.MethodGet, "/packages/"+pkg.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decodeJSON[handler.TravelPackage](t, rec)
	assert.Equal(t, pkg.StartDate, restored.StartDate)
	require.NotNil(t, restored.Lessons)
	assert.Equal(t, 3, restored.Lessons.Count)

	rec = serve(restarted, http.MethodGet, "/accommodations/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeJSON[handler.Accommodation](t, rec).Available)

	rec = serve(restarted, http.MethodGet, "/customers/"+ann.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeJSON[handler.Customer](t, rec).HasPackage)
}

func TestResortFlow_AvailableRejectsNonFinitePrice(t *testing.T) {
	h := newResortHTTPHandler(t, t.TempDir())

	for _, price := range []string{"NaN", "Inf", "-Inf"} {
		rec := serve(h, http.MethodGet, "/accommodations/available?max_price="+price, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "max_price=%s", price)
	}
}
