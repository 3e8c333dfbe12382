// internal/repository/ledger_store.go
package repository

import (
	"context"

	"bigbull-server/internal/domain"
)

// TradeWrite is one atomic unit of work for the ledger: the post-trade
// wallet state, the post-trade asset state, and the new ledger entry. All
// three are persisted together or not at all.
//
// Wallet and Asset must carry the Version observed when they were loaded;
// Commit applies version-guarded writes and fails with util.ErrCommitConflict
// when a concurrent trade got there first, so callers can reload and retry.
// Asset may be nil for cash-only entries (deposits and withdrawals). An
// Asset with ID zero is created as part of the commit, and the entry's
// AssetID is filled in from the newly assigned ID.
type TradeWrite struct {
	Wallet      *domain.Wallet
	Asset       *domain.Asset
	Transaction *domain.Transaction
}

// LedgerStore is the durable storage abstraction for wallets, assets, and
// ledger entries, with an all-or-nothing multi-entity commit. Readers never
// observe a commit's intermediate state.
type LedgerStore interface {
	WalletStore
	AssetStore
	TransactionStore

	// Commit persists one trade or cash movement atomically.
	Commit(ctx context.Context, write TradeWrite) (*domain.Transaction, error)
}

// WalletStore reads and creates wallets. Balance mutation happens only
// through Commit.
type WalletStore interface {
	CreateWallet(ctx context.Context, wallet *domain.Wallet) error
	GetWallet(ctx context.Context, username string) (*domain.Wallet, error)
}

// AssetStore reads and administers the asset catalog. Quantity and cost
// mutation happens only through Commit.
type AssetStore interface {
	CreateAsset(ctx context.Context, asset *domain.Asset) error
	GetAsset(ctx context.Context, symbol string) (*domain.Asset, error)
	GetAssetByID(ctx context.Context, id int64) (*domain.Asset, error)
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	SearchAssets(ctx context.Context, query string) ([]domain.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
}

// TransactionStore reads the append-only ledger.
type TransactionStore interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListTransactionsByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Transaction, int64, error)
	ListTransactionsByAssetID(ctx context.Context, assetID int64) ([]domain.Transaction, error)
}
