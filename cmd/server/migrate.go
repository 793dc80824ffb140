package main

import (
	"fmt"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the extensions and tables in Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := connectDB(config.LoadDBConfig(), config.LoadAppConfig())
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := repository.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
