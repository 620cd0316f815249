package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mtbuller-resort/migrations"
	"github.com/pkordes/mtbuller-resort/testutil"
)

// TestMigrations applies every migration, checks the schema, rolls everything
// back and checks the schema is gone. Skipped without TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := migrations.NewProvider(db)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// The repo tests' TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assert.True(t, tableExists(t, db, "package_snapshots"))

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.False(t, tableExists(t, db, "package_snapshots"))

	// Leave the schema in place for any package tested after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up again")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
