// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bigbull-server/internal/api/types"
	"bigbull-server/internal/domain"
	"bigbull-server/internal/service"
	"bigbull-server/internal/util"
)

// TransactionHandler handles HTTP requests for trade execution and ledger
// queries.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// ExecuteTransactionRequest represents the symbol-based trade request.
// Price is optional; when omitted the live price is fetched.
type ExecuteTransactionRequest struct {
	Username string           `json:"username"`
	Symbol   string           `json:"symbol"`
	Type     string           `json:"type"`
	Units    decimal.Decimal  `json:"units"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// ExecuteTransaction handles the symbol-based trade request.
// POST /api/transactions
func (h *TransactionHandler) ExecuteTransaction(w http.ResponseWriter, r *http.Request) {
	var req ExecuteTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Username == "" || req.Symbol == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	txType, err := service.ParseTransactionType(req.Type)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var result *domain.TransactionResult
	switch txType {
	case domain.TransactionTypeBuy:
		result, err = h.service.ExecuteBuy(r.Context(), req.Username, req.Symbol, req.Units, req.Price)
	case domain.TransactionTypeSell:
		result, err = h.service.ExecuteSell(r.Context(), req.Username, req.Symbol, req.Units, req.Price)
	}
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// CreateTransactionRequest represents the asset-id-based trade request
// with a caller-supplied price.
type CreateTransactionRequest struct {
	Username string          `json:"username"`
	AssetID  int64           `json:"asset_id"`
	Type     string          `json:"type"`
	Units    decimal.Decimal `json:"units"`
	Price    decimal.Decimal `json:"price"`
}

// CreateTransaction handles the asset-id-based trade request.
// POST /api/assets/buy and POST /api/assets/sell
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request, txType domain.TransactionType) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Username == "" || req.AssetID == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.CreateTransaction(r.Context(), req.Username, req.AssetID, txType, req.Units, req.Price)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// BuyAsset handles POST /api/assets/buy.
func (h *TransactionHandler) BuyAsset(w http.ResponseWriter, r *http.Request) {
	h.CreateTransaction(w, r, domain.TransactionTypeBuy)
}

// SellAsset handles POST /api/assets/sell.
func (h *TransactionHandler) SellAsset(w http.ResponseWriter, r *http.Request) {
	h.CreateTransaction(w, r, domain.TransactionTypeSell)
}

// GetTransaction handles GET /api/transactions/{id}.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	transaction, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// ListTransactions handles GET /api/transactions.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}

// ListTransactionsByUsername handles GET /api/transactions/user/{username}
// with limit/offset pagination.
func (h *TransactionHandler) ListTransactionsByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.service.ListTransactionsByUsername(r.Context(), username, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// ListTransactionsByAssetID handles GET /api/transactions/asset/{assetID}.
func (h *TransactionHandler) ListTransactionsByAssetID(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(chi.URLParam(r, "assetID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transactions, err := h.service.ListTransactionsByAssetID(r.Context(), assetID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}
