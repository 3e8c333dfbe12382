// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/ledger"
	"bigbull-server/internal/marketdata"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// commitRetries bounds how often a trade is replayed after losing a
// version race to a concurrent commit.
const commitRetries = 3

// TransactionService orchestrates buy and sell trades: it validates the
// request, resolves the unit price, checks funds and holdings, computes
// the post-trade wallet and position state, and commits all three entity
// writes as one atomic unit.
//
// ExecuteBuy and ExecuteSell take an optional price; when nil, the live
// price is fetched from the price source. CreateTransaction is the
// asset-id entry point with a caller-supplied price. All three share the
// same internal orchestration.
type TransactionService interface {
	ExecuteBuy(ctx context.Context, username, symbol string, units decimal.Decimal, price *decimal.Decimal) (*domain.TransactionResult, error)
	ExecuteSell(ctx context.Context, username, symbol string, units decimal.Decimal, price *decimal.Decimal) (*domain.TransactionResult, error)
	CreateTransaction(ctx context.Context, username string, assetID int64, txType domain.TransactionType, units, price decimal.Decimal) (*domain.TransactionResult, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListTransactionsByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Transaction, int64, error)
	ListTransactionsByAssetID(ctx context.Context, assetID int64) ([]domain.Transaction, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	store  repository.LedgerStore
	prices marketdata.PriceSource
	logger *slog.Logger
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(store repository.LedgerStore, prices marketdata.PriceSource, logger *slog.Logger) TransactionService {
	return &transactionService{
		store:  store,
		prices: prices,
		logger: logger,
	}
}

// assetLookup loads the asset a trade targets. Separate lookups exist for
// the symbol-based and id-based entry points.
type assetLookup func(ctx context.Context) (*domain.Asset, error)

// ExecuteBuy buys units of symbol for username. With a nil price the live
// price is fetched. A first buy of an unknown symbol creates the position.
func (s *transactionService) ExecuteBuy(ctx context.Context, username, symbol string, units decimal.Decimal, price *decimal.Decimal) (*domain.TransactionResult, error) {
	return s.execute(ctx, username, domain.TransactionTypeBuy, units, price, s.lookupBySymbol(symbol, true))
}

// ExecuteSell sells units of symbol for username. With a nil price the
// live price is fetched.
func (s *transactionService) ExecuteSell(ctx context.Context, username, symbol string, units decimal.Decimal, price *decimal.Decimal) (*domain.TransactionResult, error) {
	return s.execute(ctx, username, domain.TransactionTypeSell, units, price, s.lookupBySymbol(symbol, false))
}

// CreateTransaction executes a trade against an asset identified by ID,
// at the caller-supplied price.
func (s *transactionService) CreateTransaction(ctx context.Context, username string, assetID int64, txType domain.TransactionType, units, price decimal.Decimal) (*domain.TransactionResult, error) {
	return s.execute(ctx, username, txType, units, &price, func(ctx context.Context) (*domain.Asset, error) {
		return s.store.GetAssetByID(ctx, assetID)
	})
}

func (s *transactionService) lookupBySymbol(symbol string, createIfMissing bool) assetLookup {
	return func(ctx context.Context) (*domain.Asset, error) {
		asset, err := s.store.GetAsset(ctx, symbol)
		if err == nil {
			return asset, nil
		}
		if util.IsError(err, util.ErrAssetNotFound) && createIfMissing {
			// First buy of an unknown symbol opens an empty position;
			// the row itself is created as part of the trade commit.
			return domain.NewAsset(symbol, symbol, domain.AssetTypeStock), nil
		}
		return nil, err
	}
}

// execute runs the per-request trade state machine. Every rejection up to
// the commit leaves zero observable mutation; the commit itself is
// all-or-nothing. The price source is the only external call and is
// resolved strictly before any state is touched.
func (s *transactionService) execute(ctx context.Context, username string, txType domain.TransactionType, units decimal.Decimal, price *decimal.Decimal, lookup assetLookup) (*domain.TransactionResult, error) {
	// Step 1: validate.
	if txType != domain.TransactionTypeBuy && txType != domain.TransactionTypeSell {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidTransactionType, txType)
	}
	if units.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidQuantity
	}
	if price != nil && price.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidPrice
	}

	// The asset is loaded up front because the quote endpoint depends on
	// its type. This read mutates nothing.
	asset, err := lookup(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: resolve price. The only blocking external call; it finishes
	// before any mutation is attempted.
	tradePrice, err := s.resolvePrice(ctx, asset, price)
	if err != nil {
		return nil, err
	}

	// Steps 3-6 replay as a unit when the commit loses a version race.
	var result *domain.TransactionResult
	for attempt := 0; attempt < commitRetries; attempt++ {
		result, err = s.attemptTrade(ctx, username, txType, units, tradePrice, asset)
		if err == nil {
			return result, nil
		}
		// A duplicate-entry failure here means a concurrent first buy
		// created the position between our lookup and commit; reloading
		// and replaying resolves it the same way a version race does.
		if !util.IsError(err, util.ErrCommitConflict) && !util.IsError(err, util.ErrDuplicateEntry) {
			return nil, err
		}
		s.logger.Info("trade lost commit race, retrying",
			"username", username, "symbol", asset.Symbol, "attempt", attempt+1)

		// Reload the position for the next attempt. A position created in
		// a losing attempt may now exist under a fresh ID.
		asset, err = lookup(ctx)
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: trade for %s gave up after %d conflicts", util.ErrCommitFailed, username, commitRetries)
}

// attemptTrade performs one load-check-compute-commit cycle.
func (s *transactionService) attemptTrade(ctx context.Context, username string, txType domain.TransactionType, units, tradePrice decimal.Decimal, asset *domain.Asset) (*domain.TransactionResult, error) {
	// Step 3: load the wallet.
	wallet, err := s.store.GetWallet(ctx, username)
	if err != nil {
		return nil, err
	}

	amount := units.Mul(tradePrice)
	now := time.Now().UTC()

	// Steps 4-5: check affordability or holdings, then compute the
	// post-trade state. Pure and in-memory; nothing is persisted yet.
	updatedAsset := *asset
	var updatedWallet domain.Wallet
	switch txType {
	case domain.TransactionTypeBuy:
		if !ledger.CanAfford(wallet, amount) {
			return nil, &util.InsufficientBalanceError{Required: amount, Available: wallet.Balance}
		}
		newQuantity, newCost, err := ledger.ApplyBuy(asset, units, tradePrice)
		if err != nil {
			return nil, err
		}
		updatedWallet, err = ledger.Debit(*wallet, amount)
		if err != nil {
			return nil, err
		}
		updatedAsset.Quantity = newQuantity
		updatedAsset.CostPerUnit = newCost

	case domain.TransactionTypeSell:
		newQuantity, err := ledger.ApplySell(asset, units)
		if err != nil {
			return nil, err
		}
		updatedWallet, err = ledger.Credit(*wallet, amount)
		if err != nil {
			return nil, err
		}
		updatedAsset.Quantity = newQuantity
		if newQuantity.IsZero() {
			// Exhausted positions stay on the books at zero quantity;
			// the cost basis is undefined again until the next buy.
			updatedAsset.CostPerUnit = decimal.Zero
		}
	}
	updatedAsset.UpdatedAt = now

	// Step 6: commit wallet, asset, and ledger entry atomically.
	entry := domain.NewTradeTransaction(username, asset, txType, units, tradePrice)
	committed, err := s.store.Commit(ctx, repository.TradeWrite{
		Wallet:      &updatedWallet,
		Asset:       &updatedAsset,
		Transaction: entry,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trade committed",
		"transaction_id", committed.ID,
		"username", username,
		"symbol", updatedAsset.Symbol,
		"type", txType,
		"units", units.String(),
		"price", tradePrice.String(),
	)

	// Step 7: result mirrors exactly what was committed.
	verb := "bought"
	if txType == domain.TransactionTypeSell {
		verb = "sold"
	}
	return &domain.TransactionResult{
		Transaction:   committed,
		WalletBalance: updatedWallet.Balance,
		AssetQuantity: updatedAsset.Quantity,
		Message: fmt.Sprintf("Transaction successful: %s %s units of %s at %s",
			verb, units.String(), updatedAsset.Symbol, tradePrice.String()),
	}, nil
}

// resolvePrice returns the supplied price, or fetches the live quote when
// none was given.
func (s *transactionService) resolvePrice(ctx context.Context, asset *domain.Asset, price *decimal.Decimal) (decimal.Decimal, error) {
	if price != nil {
		return *price, nil
	}
	quote, err := s.prices.GetPrice(ctx, asset.Symbol, asset.Type)
	if err != nil {
		return decimal.Zero, err
	}
	if quote.Price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &util.PriceDataNotFoundError{Symbol: asset.Symbol}
	}
	return quote.Price, nil
}

// GetTransaction retrieves a ledger entry by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// ListTransactions retrieves all ledger entries.
func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// ListTransactionsByUsername retrieves a page of a user's ledger entries.
func (s *transactionService) ListTransactionsByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Transaction, int64, error) {
	return s.store.ListTransactionsByUsername(ctx, username, limit, offset)
}

// ListTransactionsByAssetID retrieves all ledger entries for an asset.
func (s *transactionService) ListTransactionsByAssetID(ctx context.Context, assetID int64) ([]domain.Transaction, error) {
	return s.store.ListTransactionsByAssetID(ctx, assetID)
}

// ParseTransactionType maps a request string onto a trade side.
func ParseTransactionType(raw string) (domain.TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(domain.TransactionTypeBuy):
		return domain.TransactionTypeBuy, nil
	case string(domain.TransactionTypeSell):
		return domain.TransactionTypeSell, nil
	default:
		return "", fmt.Errorf("%w: %s", util.ErrInvalidTransactionType, raw)
	}
}
