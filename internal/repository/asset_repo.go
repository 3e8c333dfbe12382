// internal/repository/asset_repo.go
package repository

import (
	"context"

	"bigbull-server/internal/domain"
)

// AssetRepository defines the interface for asset position data operations.
type AssetRepository interface {
	// CreateAsset adds a new asset position using the provided DBExecutor.
	CreateAsset(ctx context.Context, q DBExecutor, asset *domain.Asset) error
	// GetAssetBySymbol retrieves an asset by its unique symbol.
	GetAssetBySymbol(ctx context.Context, q DBExecutor, symbol string) (*domain.Asset, error)
	// GetAssetByID retrieves an asset by its ID.
	GetAssetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Asset, error)
	// ListAssets retrieves all assets.
	ListAssets(ctx context.Context, q DBExecutor) ([]domain.Asset, error)
	// SearchAssets retrieves assets whose symbol or name contains query.
	SearchAssets(ctx context.Context, q DBExecutor, query string) ([]domain.Asset, error)
	// UpdateAsset writes the asset's mutable fields guarded by its version.
	// It returns util.ErrCommitConflict when a concurrent update won, and
	// bumps asset.Version on success.
	UpdateAsset(ctx context.Context, q DBExecutor, asset *domain.Asset) error
	// DeleteAsset removes an asset by ID.
	DeleteAsset(ctx context.Context, q DBExecutor, id int64) error
}
