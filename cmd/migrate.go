package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"crmdesk/internal/config"
	"crmdesk/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Recreate the database schema (dev: DROP & CREATE tables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() { _ = database.Close() }()

		if err := db.Reset(context.Background(), database, cfg.Database.Driver); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}

		fmt.Println(">> Migration complete")
		return nil
	},
}
