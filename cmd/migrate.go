package cmd

import (
	"fmt"
	"log"
	"os"

	"catalog-admin/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and the default admin",
		RunE: func(_ *cobra.Command, _ []string) error {
			dsn := os.Getenv("DATABASE_URL")
			if dsn == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			db, err := database.Connect(dsn)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			if err := database.CreateDefaultAdmin(db); err != nil {
				return fmt.Errorf("failed to create default admin: %w", err)
			}

			log.Println("Migrations complete")
			return nil
		},
	}
}
