package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/pkg/config"
	"github.com/thrivecorp/platform/pkg/database"
	"github.com/thrivecorp/platform/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.InitLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			db, err := database.InitDB(&cfg.DB, log)
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			if err := database.Migrate(db); err != nil {
				log.Error("Migration failed", zap.Error(err))
				return err
			}
			log.Info("Database schema is up to date", zap.String("db_name", cfg.DB.DBName))
			return nil
		},
	}
}
