package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crmdesk/internal/config"
	"crmdesk/internal/db"
	"crmdesk/internal/logger"
	"crmdesk/internal/presenter"
	"crmdesk/internal/repository"
	"crmdesk/internal/service"
	"crmdesk/internal/ui"
)

// runApp wires configuration, logging, storage and the UI together and
// blocks until the user quits. Startup failures are returned so the
// root command prints them to stderr; once the UI owns the terminal,
// errors go to the log file instead.
func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := openDatabase(cfg)
	if err != nil {
		log.Error("database connect failed", zap.Error(err))
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close() }()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, database, cfg.Database.Driver); err != nil {
		log.Error("schema setup failed", zap.Error(err))
		return fmt.Errorf("ensure schema: %w", err)
	}

	if cfg.Seed.DemoData {
		seeded, err := db.Seed(ctx, database)
		if err != nil {
			log.Error("demo seed failed", zap.Error(err))
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			log.Info("demo data seeded")
		}
	}

	uow := repository.NewUnitOfWorkFactory(database)
	customers := service.NewCustomerService(uow, log)
	orders := service.NewOrderService(uow, log)

	app := ui.NewApp(customers, orders, log, presenter.Options{
		SearchDebounce: cfg.UI.SearchDebounce,
		ConfirmDelete:  cfg.UI.ConfirmDelete,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	app.Attach(program)

	log.Info("ui starting", zap.String("driver", cfg.Database.Driver))
	if _, err := program.Run(); err != nil {
		log.Error("ui exited", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("ui stopped")
	return nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	return db.Open(cfg.Database.Driver, cfg.Database.DSN, db.Opts{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		PingTimeout:     cfg.Database.PingTimeout,
	})
}
