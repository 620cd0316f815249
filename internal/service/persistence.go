// Package service contains the orchestration that sits between the HTTP layer
// and the catalog: saving and loading package snapshots, and building exports.
// Catalog invariants live in package catalog; storage lives in package repo.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/mtbuller-resort/internal/codec"
	"github.com/pkordes/mtbuller-resort/internal/domain"
	"github.com/pkordes/mtbuller-resort/internal/repo"
)

// PackageCatalog is the part of the catalog that saving and loading touch.
// *catalog.Catalog satisfies it.
type PackageCatalog interface {
	ListPackages() []domain.TravelPackage
	Restore(pkgs []domain.TravelPackage, mode domain.LoadMode) (domain.RestoreReport, error)
}

// PersistenceService saves the catalog's packages as snapshots and restores
// them, reconciling customers and accommodations on the way in.
type PersistenceService struct {
	catalog   PackageCatalog
	snapshots repo.SnapshotRepo
	log       *slog.Logger
}

// NewPersistenceService constructs a PersistenceService.
func NewPersistenceService(c PackageCatalog, snapshots repo.SnapshotRepo, log *slog.Logger) *PersistenceService {
	return &PersistenceService{catalog: c, snapshots: snapshots, log: log}
}

// Save encodes every package and stores the result under name.
// An empty name saves to domain.DefaultSnapshotName; ".dat" is appended when
// missing. Storage failures are reported as domain.ErrPersistence.
func (s *PersistenceService) Save(ctx context.Context, name string) (domain.SnapshotInfo, error) {
	name, err := domain.NormalizeSnapshotName(name)
	if err != nil {
		return domain.SnapshotInfo{}, err
	}

	pkgs := s.catalog.ListPackages()
	data, err := codec.EncodePackages(pkgs)
	if err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("service.PersistenceService.Save: %w", err)
	}

	info, err := s.snapshots.Save(ctx, name, data)
	if err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("service.PersistenceService.Save: %w", asPersistence(err))
	}

	s.log.InfoContext(ctx, "packages saved", "snapshot", info.Name, "packages", len(pkgs), "bytes", info.Size)
	return info, nil
}

// Load fetches and decodes the named snapshot, then restores it into the
// catalog using mode.
//
// A missing snapshot is domain.ErrPersistence and domain.ErrNotFound; an
// unreadable or undecodable one is domain.ErrPersistence. Restore conflicts
// come back as domain.ErrConflict or domain.ErrValidation. The catalog is
// untouched whenever an error is returned.
func (s *PersistenceService) Load(ctx context.Context, name string, mode domain.LoadMode) (domain.RestoreReport, error) {
	name, err := domain.NormalizeSnapshotName(name)
	if err != nil {
		return domain.RestoreReport{}, err
	}

	data, err := s.snapshots.Load(ctx, name)
	if err != nil {
		return domain.RestoreReport{}, fmt.Errorf("service.PersistenceService.Load: %w", asPersistence(err))
	}

	pkgs, err := codec.DecodePackages(data)
	if err != nil {
		return domain.RestoreReport{}, fmt.Errorf("service.PersistenceService.Load: %s: %w", name, err)
	}

	report, err := s.catalog.Restore(pkgs, mode)
	if err != nil {
		return domain.RestoreReport{}, fmt.Errorf("service.PersistenceService.Load: %w", err)
	}

	report.Snapshot = name

	for _, id := range report.AccommodationsInserted {
		s.log.WarnContext(ctx, "snapshot referenced an accommodation missing from the inventory; added it",
			"snapshot", name, "accommodation_id", id)
	}
	s.log.InfoContext(ctx, "packages loaded",
		"snapshot", name,
		"mode", string(report.Mode),
		"loaded", report.Loaded,
		"skipped", report.Skipped,
		"discarded", report.Discarded,
		"customers_inserted", report.CustomersInserted,
	)
	return report, nil
}

// List returns the stored snapshots, newest first.
func (s *PersistenceService) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	infos, err := s.snapshots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PersistenceService.List: %w", asPersistence(err))
	}
	return infos, nil
}

// asPersistence tags a storage error with domain.ErrPersistence, keeping any
// sentinel it already carries (domain.ErrNotFound in particular).
func asPersistence(err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
