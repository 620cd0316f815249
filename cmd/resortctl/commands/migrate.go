package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/mtbuller-resort/migrations"
)

func migrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run snapshot store migrations against DATABASE_URL",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}
			if dsn == "" {
				return errors.New("no database: set DATABASE_URL or pass --database-url")
			}

			db, err := sql.Open("pgx", dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			provider, err := migrations.NewProvider(db)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch action {
			case "up":
				results, err := provider.Up(ctx)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
				}
				fmt.Fprintf(out, "%d migration(s) applied\n", len(results))
			case "down":
				r, err := provider.Down(ctx)
				if errors.Is(err, goose.ErrNoNextVersion) {
					fmt.Fprintln(out, "nothing to roll back")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "rolled back %s\n", r.Source.Path)
			case "status":
				statuses, err := provider.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "-"
					if s.State == goose.StateApplied {
						applied = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(out, "%-8s %-25s %s\n", s.State, applied, s.Source.Path)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	return cmd
}
