// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bigbull-server/internal/api/handler"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Wallet      *handler.WalletHandler
	Asset       *handler.AssetHandler
	Transaction *handler.TransactionHandler
	Portfolio   *handler.PortfolioHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/wallet", func(r chi.Router) {
			r.Post("/create", h.Wallet.CreateWallet)
			r.Post("/deposit", h.Wallet.Deposit)
			r.Post("/withdraw", h.Wallet.Withdraw)
			r.Get("/{username}", h.Wallet.GetWallet)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Post("/", h.Asset.RegisterAsset)
			r.Get("/", h.Asset.ListAssets)
			r.Get("/search", h.Asset.SearchAssets)
			r.Post("/buy", h.Transaction.BuyAsset)
			r.Post("/sell", h.Transaction.SellAsset)
			r.Get("/symbol/{symbol}", h.Asset.GetAssetBySymbol)
			r.Get("/{id}", h.Asset.GetAsset)
			r.Get("/{id}/summary", h.Asset.GetAssetSummary)
			r.Delete("/{id}", h.Asset.DeleteAsset)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.Transaction.ExecuteTransaction)
			r.Get("/", h.Transaction.ListTransactions)
			r.Get("/user/{username}", h.Transaction.ListTransactionsByUsername)
			r.Get("/asset/{assetID}", h.Transaction.ListTransactionsByAssetID)
			r.Get("/{id}", h.Transaction.GetTransaction)
		})

		r.Get("/portfolio/{username}", h.Portfolio.GetPortfolioSummary)
	})

	return r
}
