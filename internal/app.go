// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/accounting/memory"
	router "gold-ledger/internal/api"
	"gold-ledger/internal/api/handler"
	"gold-ledger/internal/config"
	"gold-ledger/internal/repository/postgres"
	"gold-ledger/internal/service"
	"gold-ledger/internal/util"
	"gold-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // nil when running on the in-memory backend

	// The accounting stack. Both concrete stores satisfy all three
	// interfaces; everything above this point holds only the interfaces.
	Backend  accounting.Backend
	Entities accounting.EntityStore
	Prices   accounting.PriceSetter

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded.", "backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		backend := memory.NewBackend(cfg.GoldPricePerGram)
		app.Backend = backend
		app.Entities = backend
		app.Prices = backend
		app.Logger.Info("In-memory accounting backend initialized.")

	case config.BackendPostgres:
		database, err := db.NewPostgresDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		app.Logger.Info("Database connection established.")

		ledger := service.NewLedgerService(
			app.DB, // DBTxBeginner
			app.DB, // DBExecutor for non-transactional reads
			postgres.NewCustomerRepository(),
			postgres.NewBankAccountRepository(),
			postgres.NewItemRepository(),
			postgres.NewTransactionRepository(),
			db.BeginTx,
			db.CommitTx,
			db.RollbackTx,
			cfg.GoldPricePerGram,
		)
		app.Backend = ledger
		app.Entities = ledger
		app.Prices = ledger
		app.Logger.Info("Postgres accounting backend initialized.")
	}

	ledgerHandler := handler.NewLedgerHandler(app.Backend, app.Entities, app.Prices, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
