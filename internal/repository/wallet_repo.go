// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"bigbull-server/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUsername retrieves a wallet by its unique username.
	GetWalletByUsername(ctx context.Context, q DBExecutor, username string) (*domain.Wallet, error)
	// UpdateWallet writes the wallet's mutable fields guarded by its version.
	// It returns util.ErrCommitConflict when a concurrent update won, and
	// bumps wallet.Version on success.
	UpdateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
}
