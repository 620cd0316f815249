// Package domain contains the core data types for the Mt Buller resort backend.
// Apart from google/uuid this package has no external dependencies and is
// imported by every other internal package (catalog, codec, repo, service, handler).
package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// SkillLevel is a skier's self-reported ability.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillExpert       SkillLevel = "Expert"
)

// SkillLevels lists every valid SkillLevel in display order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillExpert}

// ParseSkillLevel matches s case-insensitively against the known levels and
// returns the canonical value. Surrounding whitespace is ignored.
func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, l := range SkillLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: skill level must be Beginner, Intermediate, or Expert", ErrValidation)
}

// Valid reports whether l is one of the enumerated levels.
func (l SkillLevel) Valid() bool {
	for _, v := range SkillLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Customer is a registered guest.
// HasPackage is true once a travel package referencing the customer exists.
type Customer struct {
	ID         uuid.UUID
	Name       string
	Email      string
	SkillLevel SkillLevel
	HasPackage bool
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer %s: %s <%s>, skill %s, has package: %t",
		c.ID, c.Name, c.Email, c.SkillLevel, c.HasPackage)
}

// ValidateCustomer checks the contact details every stored customer must
// have: a non-blank name and an email that is a bare address such as
// "ann@example.com". Callers trim input first; surrounding whitespace fails.
func ValidateCustomer(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not a valid email address", ErrValidation, email)
	}
	return nil
}
