package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/workforce-api/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	for _, command := range []string{"up", "down", "status"} {
		cmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: "Run goose " + command,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, logger, db, err := bootstrap(cmd.Context())
				if err != nil {
					return err
				}
				defer closeDB(db, logger)

				if cfg.Database.Driver == database.DriverSQLite {
					if command != "up" {
						return fmt.Errorf("migrate %s is not supported for sqlite", command)
					}
					return database.AutoMigrate(db.WithContext(cmd.Context()))
				}
				return database.RunMigrations(cmd.Context(), db, command)
			},
		})
	}
	return cmd
}
