// internal/service/portfolio_service.go
package service

import (
	"context"
	"log/slog"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository"

	"github.com/shopspring/decimal"
)

// PortfolioService aggregates a user's wallet and held positions into one
// valued summary.
type PortfolioService interface {
	GetPortfolioSummary(ctx context.Context, username string) (*domain.PortfolioSummary, error)
}

// portfolioService implements the PortfolioService interface.
type portfolioService struct {
	store  repository.LedgerStore
	assets AssetService
	logger *slog.Logger
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(store repository.LedgerStore, assets AssetService, logger *slog.Logger) PortfolioService {
	return &portfolioService{store: store, assets: assets, logger: logger}
}

// GetPortfolioSummary values every held position at the current price and
// totals them alongside the wallet counters.
func (s *portfolioService) GetPortfolioSummary(ctx context.Context, username string) (*domain.PortfolioSummary, error) {
	wallet, err := s.store.GetWallet(ctx, username)
	if err != nil {
		return nil, err
	}

	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	summaries := []domain.AssetSummary{}
	portfolioValue := decimal.Zero
	totalCostValue := decimal.Zero
	for i := range assets {
		if !assets[i].Quantity.IsPositive() {
			continue
		}
		summary := s.assets.GetAssetSummary(ctx, &assets[i])
		summaries = append(summaries, *summary)
		portfolioValue = portfolioValue.Add(summary.TotalValue)
		totalCostValue = totalCostValue.Add(summary.TotalCostValue)
	}

	totalGain := portfolioValue.Sub(totalCostValue)
	gainPercentage := decimal.Zero
	if totalCostValue.IsPositive() {
		gainPercentage = totalGain.Div(totalCostValue).Mul(decimal.NewFromInt(100))
	}

	return &domain.PortfolioSummary{
		Username:       username,
		WalletBalance:  wallet.Balance,
		TotalInvested:  wallet.TotalInvested,
		TotalWithdrawn: wallet.TotalWithdrawn,
		PortfolioValue: portfolioValue,
		TotalGain:      totalGain,
		GainPercentage: gainPercentage,
		Assets:         summaries,
	}, nil
}
