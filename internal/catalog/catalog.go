// Package catalog holds the resort's in-memory catalog: the canonical lists of
// customers, accommodations and travel packages, and every operation that
// mutates them. All invariants between the three lists are enforced here.
//
// Every exported method takes the catalog lock for its whole duration, so a
// Catalog is safe to share between HTTP requests. Methods that can fail check
// everything first and mutate last; a returned error always means the catalog
// is unchanged.
package catalog

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// Catalog is the resort catalog. The zero value is not usable; call New.
type Catalog struct {
	mu sync.Mutex

	customers      []*domain.Customer
	accommodations []*domain.Accommodation
	packages       []*domain.TravelPackage

	nextAccommodationID int

	now   func() time.Time
	newID func() uuid.UUID
}

// Option customizes a Catalog built by New.
type Option func(*Catalog)

// WithClock replaces time.Now as the source of the "now" start date.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// WithIDGenerator replaces uuid.New for customer and package ids.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(c *Catalog) { c.newID = gen }
}

// New returns an empty catalog. Use Seed to load the standard inventory.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		nextAccommodationID: 1,
		now:                 time.Now,
		newID:               uuid.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---- customers -------------------------------------------------------------

// AddCustomer validates and registers a new customer.
// Name and email are trimmed and must be non-empty; email must be a bare
// address such as "ann@example.com"; skill is matched case-insensitively.
func (c *Catalog) AddCustomer(name, email, skill string) (domain.Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := domain.ValidateCustomer(name, email); err != nil {
		return domain.Customer{}, err
	}
	level, err := domain.ParseSkillLevel(skill)
	if err != nil {
		return domain.Customer{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cust := &domain.Customer{
		ID:         c.newID(),
		Name:       name,
		Email:      email,
		SkillLevel: level,
	}
	c.customers = append(c.customers, cust)
	return *cust, nil
}

// FindCustomerByID returns the customer with the given id.
// Returns domain.ErrNotFound if there is none.
func (c *Catalog) FindCustomerByID(id uuid.UUID) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cust := c.customer(id)
	if cust == nil {
		return domain.Customer{}, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return *cust, nil
}

// ListCustomers returns every customer in registration order.
func (c *Catalog) ListCustomers() []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Customer, 0, len(c.customers))
	for _, cust := range c.customers {
		out = append(out, *cust)
	}
	return out
}

// ListCustomersWithoutPackage returns customers that can still be booked.
func (c *Catalog) ListCustomersWithoutPackage() []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []domain.Customer{}
	for _, cust := range c.customers {
		if !cust.HasPackage {
			out = append(out, *cust)
		}
	}
	return out
}

// ---- accommodations --------------------------------------------------------

// AddAccommodation adds a unit to the inventory with the next sequential id.
// New units are available.
func (c *Catalog) AddAccommodation(typ string, price float64) (domain.Accommodation, error) {
	t, err := domain.ParseAccommodationType(typ)
	if err != nil {
		return domain.Accommodation{}, err
	}
	if price < 0 {
		return domain.Accommodation{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	a := &domain.Accommodation{
		ID:        c.nextAccommodationID,
		Type:      t,
		Price:     price,
		Available: true,
	}
	c.nextAccommodationID++
	c.accommodations = append(c.accommodations, a)
	return *a, nil
}

// FindAccommodationByID returns the accommodation with the given id.
// Returns domain.ErrNotFound if there is none.
func (c *Catalog) FindAccommodationByID(id int) (domain.Accommodation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := c.accommodation(id)
	if a == nil {
		return domain.Accommodation{}, fmt.Errorf("%w: accommodation %d", domain.ErrNotFound, id)
	}
	return *a, nil
}

// ListAccommodations returns the whole inventory in insertion order.
func (c *Catalog) ListAccommodations() []domain.Accommodation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Accommodation, 0, len(c.accommodations))
	for _, a := range c.accommodations {
		out = append(out, *a)
	}
	return out
}

// ListAvailableAccommodations returns available units matching f, in
// insertion order. A nil Type or "All" matches any type; otherwise Type must
// name a known type (case-insensitive). MaxPrice, when set, must be a finite
// positive number and keeps units with price <= MaxPrice.
func (c *Catalog) ListAvailableAccommodations(f domain.AccommodationFilter) ([]domain.Accommodation, error) {
	var want domain.AccommodationType
	if f.Type != nil && !strings.EqualFold(strings.TrimSpace(*f.Type), "All") {
		t, err := domain.ParseAccommodationType(*f.Type)
		if err != nil {
			return nil, err
		}
		want = t
	}
	if f.MaxPrice != nil && (math.IsNaN(*f.MaxPrice) || math.IsInf(*f.MaxPrice, 0) || *f.MaxPrice <= 0) {
		return nil, fmt.Errorf("%w: max price must be greater than 0", domain.ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := []domain.Accommodation{}
	for _, a := range c.accommodations {
		if !a.Available {
			continue
		}
		if want != "" && a.Type != want {
			continue
		}
		if f.MaxPrice != nil && a.Price > *f.MaxPrice {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// ---- packages --------------------------------------------------------------

// CreatePackage books accommodationID for customerID starting on date for
// days nights. date is "YYYY-MM-DD", or "now"/"" for today.
//
// On success the new package is appended, the accommodation becomes
// unavailable and the customer is marked as having a package.
// Returns domain.ErrValidation for bad days or date, domain.ErrNotFound for an
// unknown customer or accommodation, and domain.ErrConflict when either is
// already booked.
func (c *Catalog) CreatePackage(customerID uuid.UUID, accommodationID int, date string, days int) (domain.TravelPackage, error) {
	if days <= 0 {
		return domain.TravelPackage{}, fmt.Errorf("%w: days must be a positive number", domain.ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start, err := domain.ParseStartDate(date, c.now())
	if err != nil {
		return domain.TravelPackage{}, err
	}

	cust := c.customer(customerID)
	if cust == nil {
		return domain.TravelPackage{}, fmt.Errorf("%w: customer %s", domain.ErrNotFound, customerID)
	}
	acc := c.accommodation(accommodationID)
	if acc == nil {
		return domain.TravelPackage{}, fmt.Errorf("%w: accommodation %d", domain.ErrNotFound, accommodationID)
	}
	if !acc.Available {
		return domain.TravelPackage{}, fmt.Errorf("%w: accommodation %d is not available", domain.ErrConflict, accommodationID)
	}
	if cust.HasPackage {
		return domain.TravelPackage{}, fmt.Errorf("%w: customer %s already has a package", domain.ErrConflict, customerID)
	}

	acc.Available = false
	cust.HasPackage = true
	p := &domain.TravelPackage{
		ID:            c.newID(),
		Customer:      *cust,
		Accommodation: *acc,
		StartDate:     start,
		Days:          days,
	}
	c.packages = append(c.packages, p)
	return c.view(p), nil
}

// FindPackageByID returns the package with the given id.
// Returns domain.ErrNotFound if there is none.
func (c *Catalog) FindPackageByID(id uuid.UUID) (domain.TravelPackage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.travelPackage(id)
	if p == nil {
		return domain.TravelPackage{}, fmt.Errorf("%w: package %s", domain.ErrNotFound, id)
	}
	return c.view(p), nil
}

// ListPackages returns every package in creation (or load) order.
func (c *Catalog) ListPackages() []domain.TravelPackage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewAll(func(*domain.TravelPackage) bool { return true })
}

// ListPackagesMissingLiftPass returns packages a lift pass can still be attached to.
func (c *Catalog) ListPackagesMissingLiftPass() []domain.TravelPackage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewAll(func(p *domain.TravelPackage) bool { return p.LiftPass == nil })
}

// ListPackagesMissingLessons returns packages lessons can still be attached to.
func (c *Catalog) ListPackagesMissingLessons() []domain.TravelPackage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewAll(func(p *domain.TravelPackage) bool { return p.Lessons == nil })
}

// AttachLiftPass adds a lift pass to a package. kind is "Daily" or "Season"
// (any case). Daily passes need days > 0; Season passes ignore days and
// store 0. A package holds at most one pass.
func (c *Catalog) AttachLiftPass(packageID uuid.UUID, kind string, days int) (domain.LiftPass, error) {
	k, err := domain.ParsePassKind(kind)
	if err != nil {
		return domain.LiftPass{}, err
	}
	if k == domain.PassSeason {
		days = 0
	} else if days <= 0 {
		return domain.LiftPass{}, fmt.Errorf("%w: a daily lift pass needs a positive number of days", domain.ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.travelPackage(packageID)
	if p == nil {
		return domain.LiftPass{}, fmt.Errorf("%w: package %s", domain.ErrNotFound, packageID)
	}
	if p.LiftPass != nil {
		return domain.LiftPass{}, fmt.Errorf("%w: package %s already has a lift pass", domain.ErrConflict, packageID)
	}

	p.LiftPass = &domain.LiftPass{Kind: k, Days: days}
	return *p.LiftPass, nil
}

// AttachLessons adds count lessons to a package at the customer's current
// skill level. A package holds at most one lessons record.
func (c *Catalog) AttachLessons(packageID uuid.UUID, count int) (domain.Lessons, error) {
	if count <= 0 {
		return domain.Lessons{}, fmt.Errorf("%w: lesson count must be a positive number", domain.ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.travelPackage(packageID)
	if p == nil {
		return domain.Lessons{}, fmt.Errorf("%w: package %s", domain.ErrNotFound, packageID)
	}
	if p.Lessons != nil {
		return domain.Lessons{}, fmt.Errorf("%w: package %s already has lessons", domain.ErrConflict, packageID)
	}

	level := p.Customer.SkillLevel
	if cust := c.customer(p.Customer.ID); cust != nil {
		level = cust.SkillLevel
	}
	p.Lessons = &domain.Lessons{SkillLevel: level, Count: count}
	return *p.Lessons, nil
}

// ---- lookups (caller holds c.mu) -------------------------------------------

func (c *Catalog) customer(id uuid.UUID) *domain.Customer {
	for _, cust := range c.customers {
		if cust.ID == id {
			return cust
		}
	}
	return nil
}

func (c *Catalog) accommodation(id int) *domain.Accommodation {
	for _, a := range c.accommodations {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (c *Catalog) travelPackage(id uuid.UUID) *domain.TravelPackage {
	for _, p := range c.packages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// view copies p and refreshes its customer and accommodation snapshots from
// the live entries, so readers always see current flags.
func (c *Catalog) view(p *domain.TravelPackage) domain.TravelPackage {
	out := p.Clone()
	if cust := c.customer(p.Customer.ID); cust != nil {
		out.Customer = *cust
	}
	if a := c.accommodation(p.Accommodation.ID); a != nil {
		out.Accommodation = *a
	}
	return out
}

func (c *Catalog) viewAll(keep func(*domain.TravelPackage) bool) []domain.TravelPackage {
	out := []domain.TravelPackage{}
	for _, p := range c.packages {
		if keep(p) {
			out = append(out, c.view(p))
		}
	}
	return out
}
