package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// Restore merges a loaded package list into the live catalog.
//
// For every loaded package, in order: the embedded customer is looked up by
// id and marked as having a package, or inserted (already marked) when the
// live list does not know it; the embedded accommodation is looked up by id
// and marked unavailable, or inserted (unavailable) when missing from the
// inventory. Inserted accommodations are listed in the report.
//
// With domain.LoadReplace the live package list is then replaced by the loaded
// one. Packages dropped by the replacement release their customer and
// accommodation first. With domain.LoadMerge live packages are kept and
// loaded packages whose id is already live are skipped entirely, flags
// included.
//
// Restore fails with domain.ErrValidation when a loaded customer has a blank
// name or a malformed email, or when the loaded list repeats a package,
// customer or accommodation, and with domain.ErrConflict when a
// loaded package's customer or accommodation is held by a different package
// that would survive the load. The catalog is unchanged on error.
func (c *Catalog) Restore(loaded []domain.TravelPackage, mode domain.LoadMode) (domain.RestoreReport, error) {
	if mode != domain.LoadReplace && mode != domain.LoadMerge {
		return domain.RestoreReport{}, fmt.Errorf("%w: unknown load mode %q", domain.ErrValidation, mode)
	}
	for _, p := range loaded {
		if err := domain.ValidateCustomer(p.Customer.Name, p.Customer.Email); err != nil {
			return domain.RestoreReport{}, fmt.Errorf("package %s: %w", p.ID, err)
		}
	}
	if err := checkLoadedUnique(loaded); err != nil {
		return domain.RestoreReport{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	report := domain.RestoreReport{Mode: mode, AccommodationsInserted: []int{}}

	// Work out which loaded packages apply and which live packages survive.
	var survivors, discarded []*domain.TravelPackage
	incoming := make([]domain.TravelPackage, 0, len(loaded))
	if mode == domain.LoadReplace {
		discarded = c.packages
		incoming = append(incoming, loaded...)
	} else {
		survivors = c.packages
		for _, p := range loaded {
			if c.travelPackage(p.ID) != nil {
				report.Skipped++
				continue
			}
			incoming = append(incoming, p)
		}
	}

	if err := checkNoDoubleBooking(incoming, survivors); err != nil {
		return domain.RestoreReport{}, err
	}

	// Validation is complete; everything below mutates.
	for _, p := range discarded {
		if cust := c.customer(p.Customer.ID); cust != nil {
			cust.HasPackage = false
		}
		if a := c.accommodation(p.Accommodation.ID); a != nil {
			a.Available = true
		}
	}
	report.Discarded = len(discarded)

	for _, p := range incoming {
		if cust := c.customer(p.Customer.ID); cust != nil {
			cust.HasPackage = true
		} else {
			inserted := p.Customer
			inserted.HasPackage = true
			c.customers = append(c.customers, &inserted)
			report.CustomersInserted++
		}

		if a := c.accommodation(p.Accommodation.ID); a != nil {
			a.Available = false
		} else {
			inserted := p.Accommodation
			inserted.Available = false
			c.accommodations = append(c.accommodations, &inserted)
			if inserted.ID >= c.nextAccommodationID {
				c.nextAccommodationID = inserted.ID + 1
			}
			report.AccommodationsInserted = append(report.AccommodationsInserted, inserted.ID)
		}
	}

	next := make([]*domain.TravelPackage, 0, len(survivors)+len(incoming))
	next = append(next, survivors...)
	for _, p := range incoming {
		stored := p.Clone()
		next = append(next, &stored)
	}
	c.packages = next
	report.Loaded = len(incoming)

	return report, nil
}

// checkLoadedUnique rejects a loaded list in which two packages share an id,
// a customer, or an accommodation.
func checkLoadedUnique(loaded []domain.TravelPackage) error {
	ids := make(map[uuid.UUID]bool, len(loaded))
	customers := make(map[uuid.UUID]bool, len(loaded))
	accommodations := make(map[int]bool, len(loaded))
	for _, p := range loaded {
		if ids[p.ID] {
			return fmt.Errorf("%w: package %s appears twice", domain.ErrValidation, p.ID)
		}
		if customers[p.Customer.ID] {
			return fmt.Errorf("%w: customer %s is booked by two packages", domain.ErrValidation, p.Customer.ID)
		}
		if accommodations[p.Accommodation.ID] {
			return fmt.Errorf("%w: accommodation %d is booked by two packages", domain.ErrValidation, p.Accommodation.ID)
		}
		ids[p.ID] = true
		customers[p.Customer.ID] = true
		accommodations[p.Accommodation.ID] = true
	}
	return nil
}

// checkNoDoubleBooking rejects incoming packages whose customer or
// accommodation is already held by a surviving live package.
func checkNoDoubleBooking(incoming []domain.TravelPackage, survivors []*domain.TravelPackage) error {
	customers := make(map[uuid.UUID]uuid.UUID, len(survivors))
	accommodations := make(map[int]uuid.UUID, len(survivors))
	for _, p := range survivors {
		customers[p.Customer.ID] = p.ID
		accommodations[p.Accommodation.ID] = p.ID
	}
	for _, p := range incoming {
		if holder, ok := customers[p.Customer.ID]; ok {
			return fmt.Errorf("%w: customer %s already has package %s", domain.ErrConflict, p.Customer.ID, holder)
		}
		if holder, ok := accommodations[p.Accommodation.ID]; ok {
			return fmt.Errorf("%w: accommodation %d is already booked by package %s", domain.ErrConflict, p.Accommodation.ID, holder)
		}
	}
	return nil
}
