package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// CreatePackage handles POST /packages.
// Returns 201 on success, 404 when the customer or accommodation is unknown,
// 409 when either is already booked and 422 for bad days or dates.
func (s *Server) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var body CreatePackageRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.packages.CreatePackage(body.CustomerID, body.AccommodationID, body.StartDate, body.Days)
	if err != nil {
		writeError(w, r, err, "customer or accommodation not found")
		return
	}
	writeJSON(w, http.StatusCreated, packageToResponse(created))
}

// ListPackages handles GET /packages.
// Supports ?page= and ?limit=, and ?missing=lift_pass or ?missing=lessons to
// list only packages that an extra can still be attached to.
func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	params, ok := paginationFromQuery(w, r)
	if !ok {
		return
	}

	var all []domain.TravelPackage
	switch missing := r.URL.Query().Get("missing"); missing {
	case "":
		all = s.packages.ListPackages()
	case "lift_pass":
		all = s.packages.ListPackagesMissingLiftPass()
	case "lessons":
		all = s.packages.ListPackagesMissingLessons()
	default:
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", "missing must be lift_pass or lessons")
		return
	}

	page := domain.Paginate(all, params)
	data := make([]TravelPackage, len(page))
	for i, p := range page {
		data[i] = packageToResponse(p)
	}
	writeJSON(w, http.StatusOK, PackageList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(all),
		},
	})
}

// GetPackage handles GET /packages/{id}.
func (s *Server) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}

	p, err := s.packages.FindPackageByID(id)
	if err != nil {
		writeError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// AttachLiftPass handles POST /packages/{id}/lift-pass.
// A second lift pass on the same package is 409.
func (s *Server) AttachLiftPass(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}
	var body AttachLiftPassRequest
	if !decodeBody(w, r, &body) {
		return
	}

	lp, err := s.packages.AttachLiftPass(id, body.Kind, body.Days)
	if err != nil {
		writeError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusCreated, LiftPass{Kind: string(lp.Kind), Days: lp.Days})
}

// AttachLessons handles POST /packages/{id}/lessons.
// Lessons take the customer's skill level; a second set is 409.
func (s *Server) AttachLessons(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}
	var body AttachLessonsRequest
	if !decodeBody(w, r, &body) {
		return
	}

	l, err := s.packages.AttachLessons(id, body.Count)
	if err != nil {
		writeError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusCreated, Lessons{SkillLevel: string(l.SkillLevel), Count: l.Count})
}

// --- mapping helpers --------------------------------------------------------

func packageIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "package id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func packageToResponse(p domain.TravelPackage) TravelPackage {
	resp := TravelPackage{
		ID:                p.ID,
		Customer:          customerToResponse(p.Customer),
		Accommodation:     accommodationToResponse(p.Accommodation),
		StartDate:         openapi_types.Date{Time: p.StartDate},
		EndDate:           openapi_types.Date{Time: p.EndDate()},
		Days:              p.Days,
		AccommodationCost: p.AccommodationCost(),
	}
	if p.LiftPass != nil {
		resp.LiftPass = &LiftPass{Kind: string(p.LiftPass.Kind), Days: p.LiftPass.Days}
	}
	if p.Lessons != nil {
		resp.Lessons = &Lessons{SkillLevel: string(p.Lessons.SkillLevel), Count: p.Lessons.Count}
	}
	return resp
}
