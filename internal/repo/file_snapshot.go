package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// fileSnapshotRepo stores each snapshot as a .dat file in one directory.
type fileSnapshotRepo struct {
	dir string
}

// NewFileSnapshotRepo constructs a SnapshotRepo that keeps snapshots in dir.
// The directory is created on first save if it does not exist.
func NewFileSnapshotRepo(dir string) SnapshotRepo {
	return &fileSnapshotRepo{dir: dir}
}

// Save writes data via a temp file, then atomically replaces the target.
func (r *fileSnapshotRepo) Save(ctx context.Context, name string, data []byte) (domain.SnapshotInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("repo.FileSnapshotRepo.Save: %w", err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("repo.FileSnapshotRepo.Save: %w: %v", domain.ErrPersistence, err)
	}

	path := filepath.Join(r.dir, name)
	if err := writeFile(path, data, 0o644); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("repo.FileSnapshotRepo.Save: %w: %v", domain.ErrPersistence, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("repo.FileSnapshotRepo.Save: %w: %v", domain.ErrPersistence, err)
	}
	return infoFromFile(fi), nil
}

// Load reads the named snapshot file.
func (r *fileSnapshotRepo) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.FileSnapshotRepo.Load: %w", err)
	}
	b, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("repo.FileSnapshotRepo.Load: %w: no such file %q", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.FileSnapshotRepo.Load: %w: %v", domain.ErrPersistence, err)
	}
	return b, nil
}

// List returns the .dat files in the directory, newest first.
// A missing directory means no snapshots have been saved yet.
func (r *fileSnapshotRepo) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.FileSnapshotRepo.List: %w", err)
	}
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.SnapshotInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.FileSnapshotRepo.List: %w: %v", domain.ErrPersistence, err)
	}

	infos := []domain.SnapshotInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".dat") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		infos = append(infos, infoFromFile(fi))
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].SavedAt.Equal(infos[j].SavedAt) {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

func infoFromFile(fi os.FileInfo) domain.SnapshotInfo {
	return domain.SnapshotInfo{Name: fi.Name(), Size: fi.Size(), SavedAt: fi.ModTime().UTC()}
}

// writeFile writes bytes via a temp file in the same directory, then renames
// it over path so readers never observe a half-written snapshot.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
