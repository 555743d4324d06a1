package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/colegiospro/server/internal/config"
	"codeberg.org/colegiospro/server/internal/logger"
	"codeberg.org/colegiospro/server/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the chat, visit and lead tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadEnvironmentVariables()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger.Configure(cfg.Environment)

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		db, err := storage.NewClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}

		logger.Info("schema applied")
		return nil
	},
}
