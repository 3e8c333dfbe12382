// internal/service/asset_service.go
package service

import (
	"context"
	"log/slog"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/marketdata"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// AssetService administers the asset catalog and values positions at the
// current market price. Position quantity and cost are never mutated here.
type AssetService interface {
	RegisterAsset(ctx context.Context, symbol, name string, assetType domain.AssetType) (*domain.Asset, error)
	GetAsset(ctx context.Context, id int64) (*domain.Asset, error)
	GetAssetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error)
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	SearchAssets(ctx context.Context, query string) ([]domain.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
	GetAssetSummary(ctx context.Context, asset *domain.Asset) *domain.AssetSummary
}

// assetService implements the AssetService interface.
type assetService struct {
	store  repository.LedgerStore
	prices marketdata.PriceSource
	logger *slog.Logger
}

// NewAssetService creates a new instance of AssetService.
func NewAssetService(store repository.LedgerStore, prices marketdata.PriceSource, logger *slog.Logger) AssetService {
	return &assetService{store: store, prices: prices, logger: logger}
}

// RegisterAsset adds a symbol to the catalog with an empty position.
func (s *assetService) RegisterAsset(ctx context.Context, symbol, name string, assetType domain.AssetType) (*domain.Asset, error) {
	if symbol == "" || name == "" {
		return nil, util.ErrInvalidInput
	}
	if assetType != domain.AssetTypeStock && assetType != domain.AssetTypeCrypto {
		return nil, util.ErrInvalidInput
	}

	asset := domain.NewAsset(symbol, name, assetType)
	if err := s.store.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}
	s.logger.Info("asset registered", "symbol", symbol, "type", assetType)
	return asset, nil
}

// GetAsset retrieves an asset by ID.
func (s *assetService) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	return s.store.GetAssetByID(ctx, id)
}

// GetAssetBySymbol retrieves an asset by symbol.
func (s *assetService) GetAssetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	return s.store.GetAsset(ctx, symbol)
}

// ListAssets retrieves all assets.
func (s *assetService) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return s.store.ListAssets(ctx)
}

// SearchAssets retrieves assets matching query.
func (s *assetService) SearchAssets(ctx context.Context, query string) ([]domain.Asset, error) {
	return s.store.SearchAssets(ctx, query)
}

// DeleteAsset removes an asset from the catalog.
func (s *assetService) DeleteAsset(ctx context.Context, id int64) error {
	return s.store.DeleteAsset(ctx, id)
}

// GetAssetSummary values a position at the live price. When the quote is
// unavailable the position is valued at cost, so the summary still renders.
func (s *assetService) GetAssetSummary(ctx context.Context, asset *domain.Asset) *domain.AssetSummary {
	currentPrice := asset.CostPerUnit
	if quote, err := s.prices.GetPrice(ctx, asset.Symbol, asset.Type); err == nil {
		currentPrice = quote.Price
	} else {
		s.logger.Warn("falling back to cost basis for summary", "symbol", asset.Symbol, "error", err)
	}

	totalValue := currentPrice.Mul(asset.Quantity)
	totalCostValue := asset.CostPerUnit.Mul(asset.Quantity)
	unrealizedGain := totalValue.Sub(totalCostValue)
	gainPercentage := decimal.Zero
	if totalCostValue.IsPositive() {
		gainPercentage = unrealizedGain.Div(totalCostValue).Mul(decimal.NewFromInt(100))
	}

	return &domain.AssetSummary{
		AssetID:        asset.ID,
		Symbol:         asset.Symbol,
		Name:           asset.Name,
		Type:           asset.Type,
		Quantity:       asset.Quantity,
		CostPerUnit:    asset.CostPerUnit,
		CurrentPrice:   currentPrice,
		TotalValue:     totalValue,
		TotalCostValue: totalCostValue,
		UnrealizedGain: unrealizedGain,
		GainPercentage: gainPercentage,
	}
}
