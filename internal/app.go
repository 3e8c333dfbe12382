// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "bigbull-server/internal/api"
	"bigbull-server/internal/api/handler"
	"bigbull-server/internal/config"
	"bigbull-server/internal/marketdata"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/repository/postgres"
	"bigbull-server/internal/service"
	"bigbull-server/internal/util"
	"bigbull-server/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Storage and market data
	LedgerStore repository.LedgerStore
	PriceSource marketdata.PriceSource

	// Services
	WalletService      service.WalletService
	AssetService       service.AssetService
	TransactionService service.TransactionService
	PortfolioService   service.PortfolioService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize the ledger store
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.LedgerStore = postgres.NewLedgerStore(
		app.DB,
		postgres.NewWalletRepository(app.DB),
		postgres.NewAssetRepository(app.DB),
		postgres.NewTransactionRepository(app.DB),
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Ledger store initialized.")

	// 5. Initialize the price source
	app.PriceSource = marketdata.NewQuoteClient(
		app.Config.QuoteAPIURL,
		app.Config.QuoteTimeout,
		app.Config.QuoteCacheTTL,
	)
	app.Logger.Info("Price source initialized.", "url", app.Config.QuoteAPIURL)

	// 6. Initialize Services
	app.WalletService = service.NewWalletService(app.LedgerStore, app.Logger)
	app.AssetService = service.NewAssetService(app.LedgerStore, app.PriceSource, app.Logger)
	app.TransactionService = service.NewTransactionService(app.LedgerStore, app.PriceSource, app.Logger)
	app.PortfolioService = service.NewPortfolioService(app.LedgerStore, app.AssetService, app.Logger)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Wallet:      handler.NewWalletHandler(app.WalletService, app.Logger),
		Asset:       handler.NewAssetHandler(app.AssetService, app.Logger),
		Transaction: handler.NewTransactionHandler(app.TransactionService, app.Logger),
		Portfolio:   handler.NewPortfolioHandler(app.PortfolioService, app.Logger),
	}, app.Logger)
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
