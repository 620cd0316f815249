// Package migrations embeds the goose SQL migrations for the snapshot store.
// The server applies them at startup when SNAPSHOT_BACKEND=postgres,
// resortctl applies them on demand, and integration tests apply them in TestMain.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
