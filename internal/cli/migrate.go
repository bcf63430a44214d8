package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fam-bot/internal/storage"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables and constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := storage.CreateTables(cmd.Context(), e.db); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			fmt.Println("Database schema is up to date")
			return nil
		},
	}
}
