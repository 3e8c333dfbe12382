// internal/domain/portfolio.go
package domain

import "github.com/shopspring/decimal"

// AssetSummary is a position valued at the current market price.
type AssetSummary struct {
	AssetID        int64           `json:"asset_id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Type           AssetType       `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	TotalValue     decimal.Decimal `json:"total_value"`
	TotalCostValue decimal.Decimal `json:"total_cost_value"`
	UnrealizedGain decimal.Decimal `json:"unrealized_gain"`
	GainPercentage decimal.Decimal `json:"gain_percentage"`
}

// PortfolioSummary aggregates a user's wallet and all held positions.
type PortfolioSummary struct {
	Username       string          `json:"username"`
	WalletBalance  decimal.Decimal `json:"wallet_balance"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	TotalGain      decimal.Decimal `json:"total_gain"`
	GainPercentage decimal.Decimal `json:"gain_percentage"`
	Assets         []AssetSummary  `json:"assets"`
}
