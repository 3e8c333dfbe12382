// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"bigbull-server/internal/util"
)

// DefaultTimeout bounds the handling of a single request.
const DefaultTimeout = 30 * time.Second

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps an error kind onto an HTTP status and sends it.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidTransactionType),
		util.IsError(err, util.ErrInvalidQuantity),
		util.IsError(err, util.ErrInvalidPrice),
		util.IsError(err, util.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrWalletNotFound),
		util.IsError(err, util.ErrAssetNotFound),
		util.IsError(err, util.ErrTransactionNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrInsufficientBalance),
		util.IsError(err, util.ErrInsufficientHoldings):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = err.Error()
	case util.IsError(err, util.ErrPriceDataNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrMarketDataUnavailable):
		statusCode = http.StatusBadGateway
		message = err.Error()
	case util.IsError(err, util.ErrDuplicateEntry),
		util.IsError(err, util.ErrCommitFailed):
		statusCode = http.StatusConflict
		message = err.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}
