// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/ledger"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// WalletService defines the interface for wallet-related business logic.
// Deposits and withdrawals move cash only; they do not touch the invested
// and withdrawn trade counters, which belong to the orchestrator.
type WalletService interface {
	CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*domain.Wallet, error)
	GetWallet(ctx context.Context, username string) (*domain.Wallet, error)
	Deposit(ctx context.Context, username string, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error)
	Withdraw(ctx context.Context, username string, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	store  repository.LedgerStore
	logger *slog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(store repository.LedgerStore, logger *slog.Logger) WalletService {
	return &walletService{store: store, logger: logger}
}

// CreateWallet creates a wallet for username with a non-negative starting
// balance.
func (s *walletService) CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*domain.Wallet, error) {
	if username == "" {
		return nil, util.ErrInvalidInput
	}
	if initialBalance.IsNegative() {
		return nil, util.ErrInvalidInput
	}

	wallet := domain.NewWallet(username, initialBalance)
	if err := s.store.CreateWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	s.logger.Info("wallet created", "username", username, "balance", initialBalance.String())
	return wallet, nil
}

// GetWallet retrieves the wallet for username.
func (s *walletService) GetWallet(ctx context.Context, username string) (*domain.Wallet, error) {
	return s.store.GetWallet(ctx, username)
}

// Deposit adds money to a user's wallet and records a DEPOSIT entry.
func (s *walletService) Deposit(ctx context.Context, username string, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}
	return s.moveCash(ctx, username, domain.TransactionTypeDeposit, amount)
}

// Withdraw removes money from a user's wallet and records a WITHDRAWAL
// entry. Fails when the balance does not cover amount.
func (s *walletService) Withdraw(ctx context.Context, username string, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}
	return s.moveCash(ctx, username, domain.TransactionTypeWithdrawal, amount)
}

// moveCash applies one balance-only mutation plus its ledger entry
// atomically, retrying when a concurrent commit wins the version race.
func (s *walletService) moveCash(ctx context.Context, username string, txType domain.TransactionType, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	for attempt := 0; attempt < commitRetries; attempt++ {
		wallet, err := s.store.GetWallet(ctx, username)
		if err != nil {
			return nil, nil, err
		}

		updated := *wallet
		switch txType {
		case domain.TransactionTypeDeposit:
			updated.Balance = updated.Balance.Add(amount)
		case domain.TransactionTypeWithdrawal:
			if !ledger.CanAfford(wallet, amount) {
				return nil, nil, &util.InsufficientBalanceError{Required: amount, Available: wallet.Balance}
			}
			updated.Balance = updated.Balance.Sub(amount)
		default:
			return nil, nil, util.ErrInvalidTransactionType
		}
		updated.UpdatedAt = time.Now().UTC()

		entry := domain.NewCashTransaction(username, txType, amount)
		committed, err := s.store.Commit(ctx, repository.TradeWrite{
			Wallet:      &updated,
			Transaction: entry,
		})
		if err == nil {
			s.logger.Info("cash movement committed",
				"transaction_id", committed.ID, "username", username,
				"type", txType, "amount", amount.String())
			return &updated, committed, nil
		}
		if !util.IsError(err, util.ErrCommitConflict) {
			return nil, nil, err
		}
	}
	return nil, nil, fmt.Errorf("%w: cash movement for %s gave up after %d conflicts", util.ErrCommitFailed, username, commitRetries)
}
