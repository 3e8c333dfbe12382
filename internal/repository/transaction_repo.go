// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"bigbull-server/internal/domain"
)

// TransactionRepository defines the interface for ledger entry operations.
// Entries are append-only; there is deliberately no update method.
type TransactionRepository interface {
	// CreateTransaction adds a new ledger entry using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a ledger entry by its ID.
	GetTransactionByID(ctx context.Context, q DBExecutor, id string) (*domain.Transaction, error)
	// ListTransactions retrieves all ledger entries, newest first.
	ListTransactions(ctx context.Context, q DBExecutor) ([]domain.Transaction, error)
	// ListTransactionsByUsername retrieves a page of a user's ledger entries
	// plus the total count.
	ListTransactionsByUsername(ctx context.Context, q DBExecutor, username string, limit, offset int) ([]domain.Transaction, int64, error)
	// ListTransactionsByAssetID retrieves all ledger entries for an asset.
	ListTransactionsByAssetID(ctx context.Context, q DBExecutor, assetID int64) ([]domain.Transaction, error)
}
