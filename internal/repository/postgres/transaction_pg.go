// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Methods receive a DBExecutor directly, so no connection is held here.
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, username, asset_id, symbol, type, units, price_per_unit, total_amount, transaction_time, created_at`

// CreateTransaction inserts a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, username, asset_id, symbol, type, units, price_per_unit, total_amount, transaction_time, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.Username,
		transaction.AssetID,
		transaction.Symbol,
		transaction.Type,
		transaction.Units,
		transaction.PricePerUnit,
		transaction.TotalAmount,
		transaction.TransactionTime,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a ledger entry by its ID.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := q.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves all ledger entries, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// ListTransactionsByUsername retrieves a page of a user's ledger entries
// plus the total count. Two queries: one for the page, one for the count.
func (r *TransactionRepository) ListTransactionsByUsername(ctx context.Context, q repository.DBExecutor, username string, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + `
              FROM transactions
              WHERE username = $1
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &transactions, query, username, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user '%s': %w", username, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE username = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, username); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user '%s': %w", username, err)
	}

	return transactions, totalCount, nil
}

// ListTransactionsByAssetID retrieves all ledger entries for an asset.
func (r *TransactionRepository) ListTransactionsByAssetID(ctx context.Context, q repository.DBExecutor, assetID int64) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE asset_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, assetID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for asset %d: %w", assetID, err)
	}
	return transactions, nil
}
