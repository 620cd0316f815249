package domain

import (
	"fmt"
	"strings"
)

// AccommodationType is the kind of lodging a unit offers.
type AccommodationType string

const (
	AccommodationHotel     AccommodationType = "Hotel"
	AccommodationApartment AccommodationType = "Apartment"
	AccommodationLodge     AccommodationType = "Lodge"
	AccommodationCabin     AccommodationType = "Cabin"
)

// AccommodationTypes lists every valid AccommodationType in display order.
var AccommodationTypes = []AccommodationType{
	AccommodationHotel, AccommodationApartment, AccommodationLodge, AccommodationCabin,
}

// ParseAccommodationType matches s case-insensitively against the known types
// and returns the canonical value.
func ParseAccommodationType(s string) (AccommodationType, error) {
	for _, t := range AccommodationTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown accommodation type %q", ErrValidation, s)
}

// Valid reports whether t is one of the enumerated types.
func (t AccommodationType) Valid() bool {
	for _, v := range AccommodationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Accommodation is a bookable unit.
// Available is false while exactly one active package holds it.
// Price is per night.
type Accommodation struct {
	ID        int
	Type      AccommodationType
	Price     float64
	Available bool
}

func (a Accommodation) String() string {
	return fmt.Sprintf("Accommodation %d: %s, $%.2f/night, available: %t",
		a.ID, a.Type, a.Price, a.Available)
}

// AccommodationFilter narrows ListAvailableAccommodations.
// A nil field means "no constraint". Type "All" also means no constraint.
type AccommodationFilter struct {
	Type     *string
	MaxPrice *float64
}
