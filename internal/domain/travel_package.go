package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format accepted and produced everywhere.
const DateLayout = "2006-01-02"

// DateNow is the start-date sentinel meaning "today".
const DateNow = "now"

// PassKind distinguishes per-day lift passes from whole-season passes.
type PassKind string

const (
	PassDaily  PassKind = "Daily"
	PassSeason PassKind = "Season"
)

// ParsePassKind matches s case-insensitively against Daily and Season.
func ParsePassKind(s string) (PassKind, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(PassDaily)):
		return PassDaily, nil
	case strings.EqualFold(strings.TrimSpace(s), string(PassSeason)):
		return PassSeason, nil
	}
	return "", fmt.Errorf("%w: lift pass kind must be Daily or Season", ErrValidation)
}

// LiftPass is a lift pass extra. Days is only meaningful for Daily passes;
// Season passes always store 0.
type LiftPass struct {
	Kind PassKind
	Days int
}

// Lessons is a ski-lessons extra. SkillLevel is copied from the customer when
// the lessons are attached and is not re-derived afterwards.
type Lessons struct {
	SkillLevel SkillLevel
	Count      int
}

// TravelPackage binds one customer to one accommodation for a stay.
// Customer and Accommodation are snapshots of the referenced catalog entries;
// Customer.ID and Accommodation.ID are the real references.
// StartDate is always a UTC midnight.
type TravelPackage struct {
	ID            uuid.UUID
	Customer      Customer
	Accommodation Accommodation
	StartDate     time.Time
	Days          int
	LiftPass      *LiftPass // nil until attached
	Lessons       *Lessons  // nil until attached
}

// EndDate returns the checkout date, Days after StartDate.
func (p TravelPackage) EndDate() time.Time {
	return p.StartDate.AddDate(0, 0, p.Days)
}

// AccommodationCost is the nightly price multiplied by the stay length.
func (p TravelPackage) AccommodationCost() float64 {
	return p.Accommodation.Price * float64(p.Days)
}

func (p TravelPackage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Package %s: %s in %s #%d from %s for %d day(s), $%.2f",
		p.ID, p.Customer.Name, p.Accommodation.Type, p.Accommodation.ID,
		p.StartDate.Format(DateLayout), p.Days, p.AccommodationCost())
	if p.LiftPass != nil {
		if p.LiftPass.Kind == PassSeason {
			b.WriteString(", season lift pass")
		} else {
			fmt.Fprintf(&b, ", daily lift pass x%d", p.LiftPass.Days)
		}
	}
	if p.Lessons != nil {
		fmt.Fprintf(&b, ", %d %s lesson(s)", p.Lessons.Count, p.Lessons.SkillLevel)
	}
	return b.String()
}

// Clone returns a copy of p that shares no pointers with it.
func (p TravelPackage) Clone() TravelPackage {
	if p.LiftPass != nil {
		lp := *p.LiftPass
		p.LiftPass = &lp
	}
	if p.Lessons != nil {
		l := *p.Lessons
		p.Lessons = &l
	}
	return p
}

// DateOf truncates t to its calendar date, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseStartDate turns user input into a package start date.
// The sentinel "now" (any case) and the empty string both mean the calendar
// date of now; anything else must be a YYYY-MM-DD date.
func ParseStartDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, DateNow) {
		return DateOf(now), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date must be YYYY-MM-DD or %q", ErrValidation, DateNow)
	}
	return t, nil
}
