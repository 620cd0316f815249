package catalog

import (
	"fmt"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// inventory is the fixed accommodation list every catalog starts with.
// Order matters: ids are assigned 1..n in this order, and saved package files
// refer to accommodations by those ids.
var inventory = []struct {
	typ   domain.AccommodationType
	price float64
}{
	{domain.AccommodationHotel, 180},
	{domain.AccommodationHotel, 240},
	{domain.AccommodationApartment, 150},
	{domain.AccommodationApartment, 135},
	{domain.AccommodationLodge, 260},
	{domain.AccommodationLodge, 210},
	{domain.AccommodationCabin, 95},
	{domain.AccommodationCabin, 120},
	{domain.AccommodationHotel, 320},
	{domain.AccommodationCabin, 80},
}

// Seed adds the standard resort inventory to c.
// Call it once, on an empty catalog, at startup.
func Seed(c *Catalog) error {
	for _, item := range inventory {
		if _, err := c.AddAccommodation(string(item.typ), item.price); err != nil {
			return fmt.Errorf("catalog.Seed: %w", err)
		}
	}
	return nil
}
