// Package repo contains storage for saved package snapshots.
// Each backend lives in its own file and implements SnapshotRepo.
// No business logic lives here, only I/O and type mapping; callers pass
// names already normalized by domain.NormalizeSnapshotName.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SnapshotRepo stores encoded package lists by name.
// The service layer depends on this interface, not a concrete backend.
type SnapshotRepo interface {
	// Save stores data under name, replacing any previous snapshot of that name.
	Save(ctx context.Context, name string, data []byte) (domain.SnapshotInfo, error)

	// Load returns the bytes stored under name.
	// Returns domain.ErrNotFound if no snapshot has that name.
	Load(ctx context.Context, name string) ([]byte, error)

	// List returns every stored snapshot, most recently saved first.
	List(ctx context.Context) ([]domain.SnapshotInfo, error)
}

// pgSnapshotRepo is the Postgres implementation of SnapshotRepo.
type pgSnapshotRepo struct {
	db db
}

// NewPostgresSnapshotRepo constructs a SnapshotRepo backed by the package_snapshots table.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresSnapshotRepo(db db) SnapshotRepo {
	return &pgSnapshotRepo{db: db}
}

// Save upserts the snapshot row and returns its metadata.
func (r *pgSnapshotRepo) Save(ctx context.Context, name string, data []byte) (domain.SnapshotInfo, error) {
	const q = `
		INSERT INTO package_snapshots (name, payload)
		VALUES (@name, @payload)
		ON CONFLICT (name) DO UPDATE
		SET payload  = EXCLUDED.payload,
		    saved_at = now()
		RETURNING name, octet_length(payload), saved_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "payload": data})
	info, err := scanSnapshotInfo(row)
	if err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("repo.SnapshotRepo.Save: %w", err)
	}
	return info, nil
}

// Load reads the payload of a single snapshot.
func (r *pgSnapshotRepo) Load(ctx context.Context, name string) ([]byte, error) {
	const q = `SELECT payload FROM package_snapshots WHERE name = @name`

	var data []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.SnapshotRepo.Load: %w: snapshot %q", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("repo.SnapshotRepo.Load: %w", err)
	}
	return data, nil
}

// List returns snapshot metadata ordered by saved_at descending.
func (r *pgSnapshotRepo) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	const q = `
		SELECT name, octet_length(payload), saved_at
		FROM package_snapshots
		ORDER BY saved_at DESC, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.List: %w", err)
	}
	defer rows.Close()

	infos := []domain.SnapshotInfo{}
	for rows.Next() {
		info, err := scanSnapshotInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SnapshotRepo.List: scan: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.List: rows: %w", err)
	}
	return infos, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanSnapshotInfo
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanSnapshotInfo maps a (name, size, saved_at) row into a domain.SnapshotInfo.
func scanSnapshotInfo(s scanner) (domain.SnapshotInfo, error) {
	var (
		info    domain.SnapshotInfo
		size    int32
		savedAt time.Time
	)
	if err := s.Scan(&info.Name, &size, &savedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SnapshotInfo{}, domain.ErrNotFound
		}
		return domain.SnapshotInfo{}, err
	}
	info.Size = int64(size)
	info.SavedAt = savedAt.UTC()
	return info, nil
}
