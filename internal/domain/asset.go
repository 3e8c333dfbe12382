// internal/domain/asset.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a tradable symbol.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// Asset is a position in one tradable symbol: the held quantity and its
// weighted-average cost per unit. Symbols are globally unique. CostPerUnit
// is meaningful only while Quantity > 0; a sell that exhausts the position
// keeps the row at quantity zero with CostPerUnit reset to zero.
type Asset struct {
	ID          int64           `db:"id" json:"id"`
	Symbol      string          `db:"symbol" json:"symbol"`
	Name        string          `db:"name" json:"name"`
	Type        AssetType       `db:"type" json:"type"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	CostPerUnit decimal.Decimal `db:"cost_per_unit" json:"cost_per_unit"`
	Version     int64           `db:"version" json:"-"` // optimistic concurrency token
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewAsset creates an empty position for a symbol.
func NewAsset(symbol, name string, assetType AssetType) *Asset {
	now := time.Now().UTC()
	return &Asset{
		Symbol:      symbol,
		Name:        name,
		Type:        assetType,
		Quantity:    decimal.Zero,
		CostPerUnit: decimal.Zero,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
