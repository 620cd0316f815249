package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body CreateCustomerRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.customers.AddCustomer(body.Name, body.Email, body.SkillLevel)
	if err != nil {
		writeError(w, r, err, "customer not found")
		return
	}
	writeJSON(w, http.StatusCreated, customerToResponse(created))
}

// ListCustomers handles GET /customers.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?without_package=true to list only customers a package can be created for.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	params, ok := paginationFromQuery(w, r)
	if !ok {
		return
	}

	withoutPackage := false
	if v := r.URL.Query().Get("without_package"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "without_package must be true or false")
			return
		}
		withoutPackage = b
	}

	var all []domain.Customer
	if withoutPackage {
		all = s.customers.ListCustomersWithoutPackage()
	} else {
		all = s.customers.ListCustomers()
	}

	page := domain.Paginate(all, params)
	data := make([]Customer, len(page))
	for i, c := range page {
		data[i] = customerToResponse(c)
	}
	writeJSON(w, http.StatusOK, CustomerList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(all),
		},
	})
}

// GetCustomer handles GET /customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "customer id must be a UUID")
		return
	}

	c, err := s.customers.FindCustomerByID(id)
	if err != nil {
		writeError(w, r, err, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// --- mapping helpers --------------------------------------------------------

func customerToResponse(c domain.Customer) Customer {
	return Customer{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		SkillLevel: string(c.SkillLevel),
		HasPackage: c.HasPackage,
	}
}

// paginationFromQuery reads ?page= and ?limit=. It writes a 400 and returns
// false when either is present but not an integer.
func paginationFromQuery(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	q := r.URL.Query()
	var page, limit *int
	for _, p := range []struct {
		key string
		dst **int
	}{{"page", &page}, {"limit", &limit}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, p.key+" must be an integer")
			return domain.PaginationParams{}, false
		}
		*p.dst = &n
	}
	return domain.NewPaginationParams(page, limit), true
}
