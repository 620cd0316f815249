// Package codec converts package lists to and from the saved-file format.
//
// A saved file is a JSON document tagged with a format name and version. Each
// package embeds full snapshots of its customer and accommodation, so a file
// can be restored into a catalog that has never seen those entries.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// Format is the value of the "format" field in every saved file.
const Format = "mtbuller.packages"

// Version is the current file format version.
const Version = 1

type fileJSON struct {
	Format   string        `json:"format"`
	Version  int           `json:"version"`
	Packages []packageJSON `json:"packages"`
}

type packageJSON struct {
	ID            uuid.UUID         `json:"id"`
	StartDate     string            `json:"start_date"`
	Days          int               `json:"days"`
	Customer      customerJSON      `json:"customer"`
	Accommodation accommodationJSON `json:"accommodation"`
	LiftPass      *liftPassJSON     `json:"lift_pass,omitempty"`
	Lessons       *lessonsJSON      `json:"lessons,omitempty"`
}

type customerJSON struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SkillLevel string    `json:"skill_level"`
	HasPackage bool      `json:"has_package"`
}

type accommodationJSON struct {
	ID        int     `json:"id"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type liftPassJSON struct {
	Kind string `json:"kind"`
	Days int    `json:"days"`
}

type lessonsJSON struct {
	SkillLevel string `json:"skill_level"`
	Count      int    `json:"count"`
}

// EncodePackages serializes pkgs, in order, to the saved-file format.
func EncodePackages(pkgs []domain.TravelPackage) ([]byte, error) {
	doc := fileJSON{Format: Format, Version: Version, Packages: make([]packageJSON, 0, len(pkgs))}
	for _, p := range pkgs {
		doc.Packages = append(doc.Packages, toJSON(p))
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec.EncodePackages: %w: %v", domain.ErrPersistence, err)
	}
	return b, nil
}

// DecodePackages parses a saved file. It validates every record against the
// domain rules and returns domain.ErrPersistence, never a partial list, when
// anything is wrong.
func DecodePackages(data []byte) ([]domain.TravelPackage, error) {
	var doc fileJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("codec.DecodePackages: %w: %v", domain.ErrPersistence, err)
	}
	if doc.Format != Format {
		return nil, fmt.Errorf("codec.DecodePackages: %w: not a package file (format %q)", domain.ErrPersistence, doc.Format)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("codec.DecodePackages: %w: unsupported version %d", domain.ErrPersistence, doc.Version)
	}

	out := make([]domain.TravelPackage, 0, len(doc.Packages))
	seen := make(map[uuid.UUID]bool, len(doc.Packages))
	for i, pj := range doc.Packages {
		p, err := fromJSON(pj)
		if err != nil {
			return nil, fmt.Errorf("codec.DecodePackages: %w: package %d: %v", domain.ErrPersistence, i, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("codec.DecodePackages: %w: package %s appears twice", domain.ErrPersistence, p.ID)
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func toJSON(p domain.TravelPackage) packageJSON {
	pj := packageJSON{
		ID:        p.ID,
		StartDate: p.StartDate.Format(domain.DateLayout),
		Days:      p.Days,
		Customer: customerJSON{
			ID:         p.Customer.ID,
			Name:       p.Customer.Name,
			Email:      p.Customer.Email,
			SkillLevel: string(p.Customer.SkillLevel),
			HasPackage: p.Customer.HasPackage,
		},
		Accommodation: accommodationJSON{
			ID:        p.Accommodation.ID,
			Type:      string(p.Accommodation.Type),
			Price:     p.Accommodation.Price,
			Available: p.Accommodation.Available,
		},
	}
	if p.LiftPass != nil {
		pj.LiftPass = &liftPassJSON{Kind: string(p.LiftPass.Kind), Days: p.LiftPass.Days}
	}
	if p.Lessons != nil {
		pj.Lessons = &lessonsJSON{SkillLevel: string(p.Lessons.SkillLevel), Count: p.Lessons.Count}
	}
	return pj
}

// fromJSON converts and validates one record. Enum values must match their
// canonical spelling exactly; files are machine-written.
func fromJSON(pj packageJSON) (domain.TravelPackage, error) {
	if pj.ID == uuid.Nil {
		return domain.TravelPackage{}, fmt.Errorf("missing package id")
	}
	if pj.Days <= 0 {
		return domain.TravelPackage{}, fmt.Errorf("days must be positive, got %d", pj.Days)
	}
	start, err := time.Parse(domain.DateLayout, pj.StartDate)
	if err != nil {
		return domain.TravelPackage{}, fmt.Errorf("bad start_date %q", pj.StartDate)
	}

	cj := pj.Customer
	if cj.ID == uuid.Nil {
		return domain.TravelPackage{}, fmt.Errorf("missing customer id")
	}
	if err := domain.ValidateCustomer(cj.Name, cj.Email); err != nil {
		return domain.TravelPackage{}, fmt.Errorf("customer %s: %w", cj.ID, err)
	}
	skill := domain.SkillLevel(cj.SkillLevel)
	if !skill.Valid() {
		return domain.TravelPackage{}, fmt.Errorf("unknown customer skill level %q", cj.SkillLevel)
	}

	aj := pj.Accommodation
	if aj.ID <= 0 {
		return domain.TravelPackage{}, fmt.Errorf("accommodation id must be positive, got %d", aj.ID)
	}
	typ := domain.AccommodationType(aj.Type)
	if !typ.Valid() {
		return domain.TravelPackage{}, fmt.Errorf("unknown accommodation type %q", aj.Type)
	}
	if aj.Price < 0 {
		return domain.TravelPackage{}, fmt.Errorf("accommodation price must not be negative")
	}

	p := domain.TravelPackage{
		ID: pj.ID,
		Customer: domain.Customer{
			ID:         cj.ID,
			Name:       cj.Name,
			Email:      cj.Email,
			SkillLevel: skill,
			HasPackage: cj.HasPackage,
		},
		Accommodation: domain.Accommodation{
			ID:        aj.ID,
			Type:      typ,
			Price:     aj.Price,
			Available: aj.Available,
		},
		StartDate: start,
		Days:      pj.Days,
	}

	if lp := pj.LiftPass; lp != nil {
		switch domain.PassKind(lp.Kind) {
		case domain.PassDaily:
			if lp.Days <= 0 {
				return domain.TravelPackage{}, fmt.Errorf("daily lift pass days must be positive")
			}
		case domain.PassSeason:
			if lp.Days != 0 {
				return domain.TravelPackage{}, fmt.Errorf("season lift pass must store 0 days")
			}
		default:
			return domain.TravelPackage{}, fmt.Errorf("unknown lift pass kind %q", lp.Kind)
		}
		p.LiftPass = &domain.LiftPass{Kind: domain.PassKind(lp.Kind), Days: lp.Days}
	}

	if l := pj.Lessons; l != nil {
		level := domain.SkillLevel(l.SkillLevel)
		if !level.Valid() {
			return domain.TravelPackage{}, fmt.Errorf("unknown lessons skill level %q", l.SkillLevel)
		}
		if l.Count <= 0 {
			return domain.TravelPackage{}, fmt.Errorf("lesson count must be positive")
		}
		p.Lessons = &domain.Lessons{SkillLevel: level, Count: l.Count}
	}

	return p, nil
}
