// internal/api/handler/portfolio.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bigbull-server/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio summaries.
type PortfolioHandler struct {
	service service.PortfolioService
	logger  *slog.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(svc service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		service: svc,
		logger:  logger,
	}
}

// GetPortfolioSummary handles GET /api/portfolio/{username}.
func (h *PortfolioHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	summary, err := h.service.GetPortfolioSummary(r.Context(), username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, summary)
}
