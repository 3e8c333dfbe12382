// internal/marketdata/pricesource.go

// Package marketdata is the boundary to the external quote provider.
package marketdata

import (
	"context"
	"time"

	"bigbull-server/internal/domain"

	"github.com/shopspring/decimal"
)

// Quote is the explicit schema accepted from the quote provider. Anything
// that does not fit it is rejected at this boundary rather than probed
// dynamically.
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	AsOf     time.Time       `json:"as_of"`
}

// PriceSource returns the current unit price for a symbol.
//
// Implementations distinguish two failure kinds: a MarketDataUnavailableError
// when the provider cannot be reached or errors, and a PriceDataNotFoundError
// when the provider responded but the payload carried no usable price.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string, assetType domain.AssetType) (Quote, error)
}
