package main

import (
	"github.com/spf13/cobra"
	"github.com/workforce-api/internal/database"
	"github.com/workforce-api/internal/repository"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert initial departments, projects and employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, db, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
				return err
			}
			return database.Seed(ctx, repository.NewUnitOfWorkFactory(db, logger), logger)
		},
	}
}
