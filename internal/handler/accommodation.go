package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// ListAccommodations handles GET /accommodations.
// Every unit is returned, booked or not, in insertion order.
func (s *Server) ListAccommodations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, accommodationsToResponse(s.accommodations.ListAccommodations()))
}

// CreateAccommodation handles POST /accommodations.
func (s *Server) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var body CreateAccommodationRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.accommodations.AddAccommodation(body.Type, body.Price)
	if err != nil {
		writeError(w, r, err, "accommodation not found")
		return
	}
	writeJSON(w, http.StatusCreated, accommodationToResponse(created))
}

// ListAvailableAccommodations handles GET /accommodations/available.
// ?type= narrows by type ("All" or absent means any); ?max_price= keeps units
// priced at or below the bound. No match is an empty list, not an error.
func (s *Server) ListAvailableAccommodations(w http.ResponseWriter, r *http.Request) {
	var f domain.AccommodationFilter
	q := r.URL.Query()
	if q.Has("type") {
		t := q.Get("type")
		f.Type = &t
	}
	if q.Has("max_price") {
		p, err := strconv.ParseFloat(q.Get("max_price"), 64)
		if err != nil {
			badRequest(w, "max_price must be a number")
			return
		}
		f.MaxPrice = &p
	}

	accs, err := s.accommodations.ListAvailableAccommodations(f)
	if err != nil {
		writeError(w, r, err, "accommodation not found")
		return
	}
	writeJSON(w, http.StatusOK, accommodationsToResponse(accs))
}

// GetAccommodation handles GET /accommodations/{id}.
func (s *Server) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "accommodation id must be an integer")
		return
	}

	acc, err := s.accommodations.FindAccommodationByID(id)
	if err != nil {
		writeError(w, r, err, "accommodation not found")
		return
	}
	writeJSON(w, http.StatusOK, accommodationToResponse(acc))
}

// --- mapping helpers --------------------------------------------------------

func accommodationToResponse(a domain.Accommodation) Accommodation {
	return Accommodation{
		ID:        a.ID,
		Type:      string(a.Type),
		Price:     a.Price,
		Available: a.Available,
	}
}

func accommodationsToResponse(accs []domain.Accommodation) []Accommodation {
	out := make([]Accommodation, len(accs))
	for i, a := range accs {
		out[i] = accommodationToResponse(a)
	}
	return out
}
