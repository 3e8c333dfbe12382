// internal/repository/postgres/wallet_pg.go
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

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// Methods receive a DBExecutor directly, so no connection is held here.
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (username, balance, total_invested, total_withdrawn, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.Username,
		wallet.Balance,
		wallet.TotalInvested,
		wallet.TotalWithdrawn,
		wallet.Version,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByUsername retrieves a wallet by username using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, username, balance, total_invested, total_withdrawn, version, created_at, updated_at
              FROM wallets WHERE username = $1`
	err := q.GetContext(ctx, &wallet, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for username '%s': %w", username, err)
	}
	return &wallet, nil
}

// UpdateWallet writes the wallet's mutable fields guarded by its version.
func (r *WalletRepository) UpdateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `UPDATE wallets
              SET balance = $1, total_invested = $2, total_withdrawn = $3, updated_at = $4, version = version + 1
              WHERE id = $5 AND version = $6`
	result, err := q.ExecContext(ctx, query,
		wallet.Balance,
		wallet.TotalInvested,
		wallet.TotalWithdrawn,
		wallet.UpdatedAt,
		wallet.ID,
		wallet.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d: %w", wallet.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %d: %w", wallet.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrCommitConflict
	}
	wallet.Version++
	return nil
}
