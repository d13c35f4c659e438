package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"crmdesk/internal/config"
	"crmdesk/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers and orders",
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

		ctx := context.Background()
		if err := db.EnsureSchema(ctx, database, cfg.Database.Driver); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		seeded, err := db.Seed(ctx, database)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if !seeded {
			fmt.Println(">> Database already has customers, nothing to do")
			return nil
		}

		fmt.Println(">> Seed completed")
		return nil
	},
}
