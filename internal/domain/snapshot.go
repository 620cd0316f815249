package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSnapshotName is used when a save or load names no snapshot.
const DefaultSnapshotName = "packages.dat"

// snapshotExt is appended to snapshot names that lack it.
const snapshotExt = ".dat"

// SnapshotInfo describes one saved package list.
type SnapshotInfo struct {
	Name    string
	Size    int64
	SavedAt time.Time
}

// NormalizeSnapshotName applies the naming rules shared by every snapshot
// backend: empty means DefaultSnapshotName, ".dat" is appended when missing,
// and names that could escape the snapshot directory are rejected.
func NormalizeSnapshotName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultSnapshotName, nil
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: snapshot name %q must not contain path separators", ErrValidation, name)
	}
	if !strings.HasSuffix(strings.ToLower(name), snapshotExt) {
		name += snapshotExt
	}
	return name, nil
}

// LoadMode decides what happens to the live package list when a snapshot
// is restored.
type LoadMode string

const (
	// LoadReplace discards live packages and installs the loaded list.
	LoadReplace LoadMode = "replace"
	// LoadMerge keeps live packages and appends loaded ones not already present.
	LoadMerge LoadMode = "merge"
)

// ParseLoadMode accepts "replace" or "merge" in any case; empty means replace.
func ParseLoadMode(s string) (LoadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(LoadReplace):
		return LoadReplace, nil
	case string(LoadMerge):
		return LoadMerge, nil
	}
	return "", fmt.Errorf("%w: load mode must be replace or merge", ErrValidation)
}

// RestoreReport summarizes what a restore changed in the catalog.
type RestoreReport struct {
	// Snapshot is the normalized name the packages were read from. The
	// catalog leaves it empty; the persistence service fills it in.
	Snapshot string
	Mode     LoadMode
	// Loaded counts packages from the snapshot now in the live list.
	Loaded int
	// Skipped counts snapshot packages already live (merge mode only).
	Skipped int
	// Discarded counts live packages dropped by a replace.
	Discarded int
	// CustomersInserted counts embedded customers missing from the live list.
	CustomersInserted int
	// AccommodationsInserted lists the ids of embedded accommodations that were
	// missing from the live inventory and were added to it.
	AccommodationsInserted []int
}
