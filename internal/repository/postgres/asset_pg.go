// internal/repository/postgres/asset_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// AssetRepository implements repository.AssetRepository for PostgreSQL.
type AssetRepository struct {
	// Methods receive a DBExecutor directly, so no connection is held here.
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *sqlx.DB) repository.AssetRepository {
	return &AssetRepository{}
}

const assetColumns = `id, symbol, name, type, quantity, cost_per_unit, version, created_at, updated_at`

// CreateAsset inserts a new asset position using the provided DBExecutor.
func (r *AssetRepository) CreateAsset(ctx context.Context, q repository.DBExecutor, asset *domain.Asset) error {
	query := `INSERT INTO assets (symbol, name, type, quantity, cost_per_unit, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		asset.Symbol,
		asset.Name,
		asset.Type,
		asset.Quantity,
		asset.CostPerUnit,
		asset.Version,
		asset.CreatedAt,
		asset.UpdatedAt,
	).Scan(&asset.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// GetAssetBySymbol retrieves an asset by its unique symbol.
func (r *AssetRepository) GetAssetBySymbol(ctx context.Context, q repository.DBExecutor, symbol string) (*domain.Asset, error) {
	var asset domain.Asset
	query := `SELECT ` + assetColumns + ` FROM assets WHERE symbol = $1`
	err := q.GetContext(ctx, &asset, query, symbol)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by symbol '%s': %w", symbol, err)
	}
	return &asset, nil
}

// GetAssetByID retrieves an asset by its ID.
func (r *AssetRepository) GetAssetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Asset, error) {
	var asset domain.Asset
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	err := q.GetContext(ctx, &asset, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID %d: %w", id, err)
	}
	return &asset, nil
}

// ListAssets retrieves all assets ordered by symbol.
func (r *AssetRepository) ListAssets(ctx context.Context, q repository.DBExecutor) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY symbol`
	if err := q.SelectContext(ctx, &assets, query); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// SearchAssets retrieves assets whose symbol or name contains query,
// case-insensitively.
func (r *AssetRepository) SearchAssets(ctx context.Context, q repository.DBExecutor, query string) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	sqlQuery := `SELECT ` + assetColumns + ` FROM assets
                 WHERE symbol ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
                 ORDER BY symbol`
	if err := q.SelectContext(ctx, &assets, sqlQuery, query); err != nil {
		return nil, fmt.Errorf("failed to search assets for '%s': %w", query, err)
	}
	return assets, nil
}

// UpdateAsset writes the asset's mutable fields guarded by its version.
func (r *AssetRepository) UpdateAsset(ctx context.Context, q repository.DBExecutor, asset *domain.Asset) error {
	query := `UPDATE assets
              SET name = $1, type = $2, quantity = $3, cost_per_unit = $4, updated_at = $5, version = version + 1
              WHERE id = $6 AND version = $7`
	result, err := q.ExecContext(ctx, query,
		asset.Name,
		asset.Type,
		asset.Quantity,
		asset.CostPerUnit,
		asset.UpdatedAt,
		asset.ID,
		asset.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset %d: %w", asset.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating asset %d: %w", asset.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrCommitConflict
	}
	asset.Version++
	return nil
}

// DeleteAsset removes an asset by ID.
func (r *AssetRepository) DeleteAsset(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting asset %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrAssetNotFound
	}
	return nil
}
