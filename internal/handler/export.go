package handler

// export.go implements GET /export: every package as a flat table, JSON by
// default or CSV with ?format=csv.

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"package_id", "start_date", "end_date", "days",
	"customer_id", "customer_name", "customer_email", "skill_level",
	"accommodation_id", "accommodation_type", "nightly_price", "accommodation_cost",
	"lift_pass_kind", "lift_pass_days", "lesson_count", "lesson_level",
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; anything else (or nothing) is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err, "export not found")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV, header first.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="packages.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON form.
// Unattached extras become nil pointers (omitted from the JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	packageID, _ := uuid.Parse(r.PackageID)
	customerID, _ := uuid.Parse(r.CustomerID)

	row := ExportRow{
		PackageID:         packageID,
		StartDate:         mustParseDate(r.StartDate),
		EndDate:           mustParseDate(r.EndDate),
		Days:              r.Days,
		CustomerID:        customerID,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		SkillLevel:        r.SkillLevel,
		AccommodationID:   r.AccommodationID,
		AccommodationType: r.AccommodationType,
		NightlyPrice:      r.NightlyPrice,
		AccommodationCost: r.AccommodationCost,
	}
	if r.LiftPassKind != "" {
		row.LiftPassKind = &r.LiftPassKind
		row.LiftPassDays = &r.LiftPassDays
	}
	if r.LessonCount > 0 {
		row.LessonCount = &r.LessonCount
		row.LessonLevel = &r.LessonLevel
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Unattached extras are empty cells.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	var passDays, lessonCount string
	if r.LiftPassKind != "" {
		passDays = strconv.Itoa(r.LiftPassDays)
	}
	if r.LessonCount > 0 {
		lessonCount = strconv.Itoa(r.LessonCount)
	}
	return []string{
		r.PackageID,
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.Days),
		r.CustomerID,
		r.CustomerName,
		r.CustomerEmail,
		r.SkillLevel,
		strconv.Itoa(r.AccommodationID),
		r.AccommodationType,
		formatMoney(r.NightlyPrice),
		formatMoney(r.AccommodationCost),
		r.LiftPassKind,
		passDays,
		lessonCount,
		r.LessonLevel,
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
