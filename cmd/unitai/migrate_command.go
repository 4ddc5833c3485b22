package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/unitai/internal/infra/sqlite"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending history database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.HistoryEnabled() {
				return errors.New("history is disabled (DATABASE_PATH=off); nothing to migrate")
			}

			db, err := sqlite.NewDB(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			applied, err := sqlite.MigrateUp(cmd.Context(), db)
			if err != nil {
				return err
			}
			current, err := sqlite.MigrationVersion(cmd.Context(), db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s); schema version %d\n", applied, current)
			return err
		},
	}
}
