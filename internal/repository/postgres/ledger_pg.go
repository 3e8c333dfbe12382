// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"fmt"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"
	"bigbull-server/pkg/db"

	"github.com/jmoiron/sqlx"
)

// LedgerStore implements repository.LedgerStore on PostgreSQL by composing
// the row-level repositories with the transaction manager. Commit runs all
// writes of one trade inside a single database transaction; wallet and
// asset updates are version-guarded, so a lost race surfaces as
// util.ErrCommitConflict and the caller reloads and retries.
type LedgerStore struct {
	dbConn       *sqlx.DB
	wallets      repository.WalletRepository
	assets       repository.AssetRepository
	transactions repository.TransactionRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewLedgerStore creates a LedgerStore backed by the given connection pool.
func NewLedgerStore(
	dbConn *sqlx.DB,
	wallets repository.WalletRepository,
	assets repository.AssetRepository,
	transactions repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) *LedgerStore {
	return &LedgerStore{
		dbConn:       dbConn,
		wallets:      wallets,
		assets:       assets,
		transactions: transactions,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// CreateWallet adds a new wallet.
func (s *LedgerStore) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	return s.wallets.CreateWallet(ctx, s.dbConn, wallet)
}

// GetWallet retrieves a wallet by username.
func (s *LedgerStore) GetWallet(ctx context.Context, username string) (*domain.Wallet, error) {
	return s.wallets.GetWalletByUsername(ctx, s.dbConn, username)
}

// CreateAsset adds a new asset position.
func (s *LedgerStore) CreateAsset(ctx context.Context, asset *domain.Asset) error {
	return s.assets.CreateAsset(ctx, s.dbConn, asset)
}

// GetAsset retrieves an asset by symbol.
func (s *LedgerStore) GetAsset(ctx context.Context, symbol string) (*domain.Asset, error) {
	return s.assets.GetAssetBySymbol(ctx, s.dbConn, symbol)
}

// GetAssetByID retrieves an asset by ID.
func (s *LedgerStore) GetAssetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	return s.assets.GetAssetByID(ctx, s.dbConn, id)
}

// ListAssets retrieves all assets.
func (s *LedgerStore) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return s.assets.ListAssets(ctx, s.dbConn)
}

// SearchAssets retrieves assets matching query.
func (s *LedgerStore) SearchAssets(ctx context.Context, query string) ([]domain.Asset, error) {
	return s.assets.SearchAssets(ctx, s.dbConn, query)
}

// DeleteAsset removes an asset by ID.
func (s *LedgerStore) DeleteAsset(ctx context.Context, id int64) error {
	return s.assets.DeleteAsset(ctx, s.dbConn, id)
}

// GetTransaction retrieves a ledger entry by ID.
func (s *LedgerStore) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.transactions.GetTransactionByID(ctx, s.dbConn, id)
}

// ListTransactions retrieves all ledger entries.
func (s *LedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.ListTransactions(ctx, s.dbConn)
}

// ListTransactionsByUsername retrieves a page of a user's ledger entries.
func (s *LedgerStore) ListTransactionsByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Transaction, int64, error) {
	return s.transactions.ListTransactionsByUsername(ctx, s.dbConn, username, limit, offset)
}

// ListTransactionsByAssetID retrieves all ledger entries for an asset.
func (s *LedgerStore) ListTransactionsByAssetID(ctx context.Context, assetID int64) ([]domain.Transaction, error) {
	return s.transactions.ListTransactionsByAssetID(ctx, s.dbConn, assetID)
}

// Commit persists one trade or cash movement as a single database
// transaction. Either every write lands or none do.
func (s *LedgerStore) Commit(ctx context.Context, write repository.TradeWrite) (*domain.Transaction, error) {
	if write.Wallet == nil || write.Transaction == nil {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbConn)
	if err != nil {
		return nil, fmt.Errorf("commit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("commit: transaction controller does not implement DBExecutor")
	}

	if err := s.wallets.UpdateWallet(ctx, txExecutor, write.Wallet); err != nil {
		return nil, err
	}

	if write.Asset != nil {
		if write.Asset.ID == 0 {
			if err := s.assets.CreateAsset(ctx, txExecutor, write.Asset); err != nil {
				return nil, err
			}
		} else {
			if err := s.assets.UpdateAsset(ctx, txExecutor, write.Asset); err != nil {
				return nil, err
			}
		}
		// The entry references the asset row, which may only just have
		// received its ID.
		assetID := write.Asset.ID
		write.Transaction.AssetID = &assetID
	}

	if err := s.transactions.CreateTransaction(ctx, txExecutor, write.Transaction); err != nil {
		return nil, err
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCommitFailed, err)
	}

	return write.Transaction, nil
}
