// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bigbull-server/internal/service"
	"bigbull-server/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	Username       string          `json:"username"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// CreateWallet handles the create wallet request.
// POST /api/wallet/create
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Username == "" || req.InitialBalance.IsNegative() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.CreateWallet(r.Context(), req.Username, req.InitialBalance)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, wallet)
}

// GetWallet handles the get wallet request.
// GET /api/wallet/{username}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	wallet, err := h.service.GetWallet(r.Context(), username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, wallet)
}

// CashRequest represents the request body for deposit and withdraw.
type CashRequest struct {
	Username string          `json:"username"`
	Amount   decimal.Decimal `json:"amount"`
}

// Deposit handles the deposit money request.
// POST /api/wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req CashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, transaction, err := h.service.Deposit(r.Context(), req.Username, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        "Deposit successful",
		"username":       wallet.Username,
		"new_balance":    wallet.Balance,
		"transaction_id": transaction.ID,
	})
}

// Withdraw handles the withdraw money request.
// POST /api/wallet/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req CashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, transaction, err := h.service.Withdraw(r.Context(), req.Username, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        "Withdrawal successful",
		"username":       wallet.Username,
		"new_balance":    wallet.Balance,
		"transaction_id": transaction.ID,
	})
}
