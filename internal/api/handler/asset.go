// internal/api/handler/asset.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/service"
	"bigbull-server/internal/util"
)

// AssetHandler handles HTTP requests for the asset catalog.
type AssetHandler struct {
	service service.AssetService
	logger  *slog.Logger
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(svc service.AssetService, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterAssetRequest represents the request body for asset registration.
type RegisterAssetRequest struct {
	Symbol string           `json:"symbol"`
	Name   string           `json:"name"`
	Type   domain.AssetType `json:"type"`
}

// RegisterAsset handles POST /api/assets.
func (h *AssetHandler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	asset, err := h.service.RegisterAsset(r.Context(), req.Symbol, req.Name, req.Type)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, asset)
}

// GetAsset handles GET /api/assets/{id}.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	asset, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, asset)
}

// GetAssetBySymbol handles GET /api/assets/symbol/{symbol}.
func (h *AssetHandler) GetAssetBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	asset, err := h.service.GetAssetBySymbol(r.Context(), symbol)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, asset)
}

// ListAssets handles GET /api/assets.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.ListAssets(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, assets)
}

// SearchAssets handles GET /api/assets/search?query=...
func (h *AssetHandler) SearchAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	assets, err := h.service.SearchAssets(r.Context(), query)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, assets)
}

// DeleteAsset handles DELETE /api/assets/{id}.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteAsset(r.Context(), id); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssetSummary handles GET /api/assets/{id}/summary.
func (h *AssetHandler) GetAssetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	asset, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, h.service.GetAssetSummary(r.Context(), asset))
}
