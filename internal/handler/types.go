package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies. JSON field names follow spec/openapi.yaml.

// ErrorDetail is the body of every non-2xx JSON response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Pagination describes the page returned by a paged list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Customer is the API representation of domain.Customer.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SkillLevel string    `json:"skill_level"`
	HasPackage bool      `json:"has_package"`
}

// CustomerList is a page of customers.
type CustomerList struct {
	Data       []Customer `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateCustomerRequest is the body of POST /customers.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	SkillLevel string `json:"skill_level"`
}

// Accommodation is the API representation of domain.Accommodation.
type Accommodation struct {
	ID        int     `json:"id"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// CreateAccommodationRequest is the body of POST /accommodations.
type CreateAccommodationRequest struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// LiftPass is the API representation of domain.LiftPass.
type LiftPass struct {
	Kind string `json:"kind"`
	Days int    `json:"days"`
}

// Lessons is the API representation of domain.Lessons.
type Lessons struct {
	SkillLevel string `json:"skill_level"`
	Count      int    `json:"count"`
}

// TravelPackage is the API representation of domain.TravelPackage.
type TravelPackage struct {
	ID                uuid.UUID          `json:"id"`
	Customer          Customer           `json:"customer"`
	Accommodation     Accommodation      `json:"accommodation"`
	StartDate         openapi_types.Date `json:"start_date"`
	EndDate           openapi_types.Date `json:"end_date"`
	Days              int                `json:"days"`
	AccommodationCost float64            `json:"accommodation_cost"`
	LiftPass          *LiftPass          `json:"lift_pass,omitempty"`
	Lessons           *Lessons           `json:"lessons,omitempty"`
}

// PackageList is a page of travel packages.
type PackageList struct {
	Data       []TravelPackage `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// CreatePackageRequest is the body of POST /packages.
// StartDate is YYYY-MM-DD, or "now" or empty for today.
type CreatePackageRequest struct {
	CustomerID      uuid.UUID `json:"customer_id"`
	AccommodationID int       `json:"accommodation_id"`
	StartDate       string    `json:"start_date"`
	Days            int       `json:"days"`
}

// AttachLiftPassRequest is the body of POST /packages/{id}/lift-pass.
type AttachLiftPassRequest struct {
	Kind string `json:"kind"`
	Days int    `json:"days"`
}

// AttachLessonsRequest is the body of POST /packages/{id}/lessons.
type AttachLessonsRequest struct {
	Count int `json:"count"`
}

// Snapshot describes one saved package list.
type Snapshot struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	SavedAt time.Time `json:"saved_at"`
}

// SaveSnapshotRequest is the body of POST /snapshots. An empty or missing
// name saves to packages.dat.
type SaveSnapshotRequest struct {
	Name string `json:"name"`
}

// RestoreReport is returned by POST /snapshots/{name}/load.
type RestoreReport struct {
	Snapshot               string `json:"snapshot"`
	Mode                   string `json:"mode"`
	Loaded                 int    `json:"loaded"`
	Skipped                int    `json:"skipped"`
	Discarded              int    `json:"discarded"`
	CustomersInserted      int    `json:"customers_inserted"`
	AccommodationsInserted []int  `json:"accommodations_inserted"`
}

// ExportRow is one row of GET /export in JSON form.
// Extras that are not attached are omitted.
type ExportRow struct {
	PackageID         uuid.UUID          `json:"package_id"`
	StartDate         openapi_types.Date `json:"start_date"`
	EndDate           openapi_types.Date `json:"end_date"`
	Days              int                `json:"days"`
	CustomerID        uuid.UUID          `json:"customer_id"`
	CustomerName      string             `json:"customer_name"`
	CustomerEmail     string             `json:"customer_email"`
	SkillLevel        string             `json:"skill_level"`
	AccommodationID   int                `json:"accommodation_id"`
	AccommodationType string             `json:"accommodation_type"`
	NightlyPrice      float64            `json:"nightly_price"`
	AccommodationCost float64            `json:"accommodation_cost"`
	LiftPassKind      *string            `json:"lift_pass_kind,omitempty"`
	LiftPassDays      *int               `json:"lift_pass_days,omitempty"`
	LessonCount       *int               `json:"lesson_count,omitempty"`
	LessonLevel       *string            `json:"lesson_level,omitempty"`
}
