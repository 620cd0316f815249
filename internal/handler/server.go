// Package handler implements the HTTP handlers for the Mt Buller resort API.
// All handlers are methods on Server. Methods are split into resource files
// (customer.go, package.go, etc.) but share the same Server struct so they can
// reach its dependencies. Handler and HandlerFromMux register the routes.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// CustomerServicer defines the customer operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock. *catalog.Catalog satisfies it.
type CustomerServicer interface {
	AddCustomer(name, email, skill string) (domain.Customer, error)
	FindCustomerByID(id uuid.UUID) (domain.Customer, error)
	ListCustomers() []domain.Customer
	ListCustomersWithoutPackage() []domain.Customer
}

// AccommodationServicer defines the inventory operations the handlers depend on.
type AccommodationServicer interface {
	AddAccommodation(typ string, price float64) (domain.Accommodation, error)
	FindAccommodationByID(id int) (domain.Accommodation, error)
	ListAccommodations() []domain.Accommodation
	ListAvailableAccommodations(f domain.AccommodationFilter) ([]domain.Accommodation, error)
}

// PackageServicer defines the travel package operations the handlers depend on.
type PackageServicer interface {
	CreatePackage(customerID uuid.UUID, accommodationID int, date string, days int) (domain.TravelPackage, error)
	FindPackageByID(id uuid.UUID) (domain.TravelPackage, error)
	ListPackages() []domain.TravelPackage
	ListPackagesMissingLiftPass() []domain.TravelPackage
	ListPackagesMissingLessons() []domain.TravelPackage
	AttachLiftPass(packageID uuid.UUID, kind string, days int) (domain.LiftPass, error)
	AttachLessons(packageID uuid.UUID, count int) (domain.Lessons, error)
}

// SnapshotServicer defines the save/load operations the handlers depend on.
// *service.PersistenceService satisfies it.
type SnapshotServicer interface {
	Save(ctx context.Context, name string) (domain.SnapshotInfo, error)
	Load(ctx context.Context, name string, mode domain.LoadMode) (domain.RestoreReport, error)
	List(ctx context.Context) ([]domain.SnapshotInfo, error)
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds every dependency the handlers need.
// Any servicer may be nil when the routes that use it are not exercised,
// which keeps single-resource handler tests small.
type Server struct {
	customers      CustomerServicer
	accommodations AccommodationServicer
	packages       PackageServicer
	snapshots      SnapshotServicer
	export         ExportServicer

	// loadMode is used when POST /snapshots/{name}/load has no ?mode=.
	loadMode domain.LoadMode
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	customers CustomerServicer,
	accommodations AccommodationServicer,
	packages PackageServicer,
	snapshots SnapshotServicer,
	export ExportServicer,
) *Server {
	return &Server{
		customers:      customers,
		accommodations: accommodations,
		packages:       packages,
		snapshots:      snapshots,
		export:         export,
		loadMode:       domain.LoadReplace,
	}
}

// WithDefaultLoadMode sets the restore mode used when a load request does not
// name one, and returns s.
func (s *Server) WithDefaultLoadMode(mode domain.LoadMode) *Server {
	s.loadMode = mode
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Handler returns a new chi router with every API route registered.
func Handler(s *Server) http.Handler {
	return HandlerFromMux(s, chi.NewRouter())
}

// HandlerFromMux registers every API route on r and returns it.
func HandlerFromMux(s *Server, r chi.Router) http.Handler {
	r.Get("/healthz", s.GetHealth)

	r.Route("/accommodations", func(r chi.Router) {
		r.Get("/", s.ListAccommodations)
		r.Post("/", s.CreateAccommodation)
		r.Get("/available", s.ListAvailableAccommodations)
		r.Get("/{id}", s.GetAccommodation)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", s.ListCustomers)
		r.Post("/", s.CreateCustomer)
		r.Get("/{id}", s.GetCustomer)
	})

	r.Route("/packages", func(r chi.Router) {
		r.Get("/", s.ListPackages)
		r.Post("/", s.CreatePackage)
		r.Get("/{id}", s.GetPackage)
		r.Post("/{id}/lift-pass", s.AttachLiftPass)
		r.Post("/{id}/lessons", s.AttachLessons)
	})

	r.Get("/export", s.GetExport)

	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.ListSnapshots)
		r.Post("/", s.SaveSnapshot)
		r.Post("/{name}/load", s.LoadSnapshot)
	})

	return r
}
