// internal/repository/memory/ledger_memory.go

// Package memory provides an in-memory reference implementation of
// repository.LedgerStore. It honors the same commit semantics as the
// PostgreSQL store — atomic multi-entity writes, version-guarded updates,
// isolated reads — and backs the test suites so they need no database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository"
	"bigbull-server/internal/util"
)

// LedgerStore keeps wallets, assets, and ledger entries in maps guarded by
// one RWMutex. Commit holds the write lock for its whole critical section,
// so readers see either the pre- or post-trade state, never an
// intermediate one.
type LedgerStore struct {
	mu            sync.RWMutex
	wallets       map[string]domain.Wallet // keyed by username
	assets        map[int64]domain.Asset   // keyed by ID
	assetIDs      map[string]int64         // symbol -> ID
	transactions  map[string]domain.Transaction
	entryOrder    []string // insertion order of ledger entries
	nextWalletID  int64
	nextAssetID   int64
}

// NewLedgerStore creates an empty in-memory store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		wallets:      make(map[string]domain.Wallet),
		assets:       make(map[int64]domain.Asset),
		assetIDs:     make(map[string]int64),
		transactions: make(map[string]domain.Transaction),
		nextWalletID: 1,
		nextAssetID:  1,
	}
}

// CreateWallet adds a new wallet, rejecting duplicate usernames.
func (s *LedgerStore) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[wallet.Username]; exists {
		return util.ErrDuplicateEntry
	}
	wallet.ID = s.nextWalletID
	s.nextWalletID++
	s.wallets[wallet.Username] = *wallet
	return nil
}

// GetWallet retrieves a copy of the wallet for username.
func (s *LedgerStore) GetWallet(ctx context.Context, username string) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallet, ok := s.wallets[username]
	if !ok {
		return nil, util.ErrWalletNotFound
	}
	return &wallet, nil
}

// CreateAsset adds a new asset position, rejecting duplicate symbols.
func (s *LedgerStore) CreateAsset(ctx context.Context, asset *domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAssetLocked(asset)
}

func (s *LedgerStore) createAssetLocked(asset *domain.Asset) error {
	if _, exists := s.assetIDs[asset.Symbol]; exists {
		return util.ErrDuplicateEntry
	}
	asset.ID = s.nextAssetID
	s.nextAssetID++
	s.assets[asset.ID] = *asset
	s.assetIDs[asset.Symbol] = asset.ID
	return nil
}

// GetAsset retrieves a copy of the asset for symbol.
func (s *LedgerStore) GetAsset(ctx context.Context, symbol string) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.assetIDs[symbol]
	if !ok {
		return nil, util.ErrAssetNotFound
	}
	asset := s.assets[id]
	return &asset, nil
}

// GetAssetByID retrieves a copy of the asset with the given ID.
func (s *LedgerStore) GetAssetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, util.ErrAssetNotFound
	}
	return &asset, nil
}

// ListAssets retrieves all assets ordered by symbol.
func (s *LedgerStore) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := make([]domain.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Symbol < assets[j].Symbol })
	return assets, nil
}

// SearchAssets retrieves assets whose symbol or name contains query,
// case-insensitively, ordered by symbol.
func (s *LedgerStore) SearchAssets(ctx context.Context, query string) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	assets := []domain.Asset{}
	for _, asset := range s.assets {
		if strings.Contains(strings.ToLower(asset.Symbol), query) ||
			strings.Contains(strings.ToLower(asset.Name), query) {
			assets = append(assets, asset)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Symbol < assets[j].Symbol })
	return assets, nil
}

// DeleteAsset removes an asset by ID.
func (s *LedgerStore) DeleteAsset(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return util.ErrAssetNotFound
	}
	delete(s.assets, id)
	delete(s.assetIDs, asset.Symbol)
	return nil
}

// GetTransaction retrieves a copy of the ledger entry with the given ID.
func (s *LedgerStore) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return nil, util.ErrTransactionNotFound
	}
	return &transaction, nil
}

// ListTransactions retrieves all ledger entries, newest first.
func (s *LedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]domain.Transaction, 0, len(s.entryOrder))
	for i := len(s.entryOrder) - 1; i >= 0; i-- {
		transactions = append(transactions, s.transactions[s.entryOrder[i]])
	}
	return transactions, nil
}

// ListTransactionsByUsername retrieves a page of a user's ledger entries,
// newest first, plus the total count.
func (s *LedgerStore) ListTransactionsByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := []domain.Transaction{}
	for i := len(s.entryOrder) - 1; i >= 0; i-- {
		if t := s.transactions[s.entryOrder[i]]; t.Username == username {
			matching = append(matching, t)
		}
	}
	totalCount := int64(len(matching))

	if offset >= len(matching) {
		return []domain.Transaction{}, totalCount, nil
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[offset:end], totalCount, nil
}

// ListTransactionsByAssetID retrieves all ledger entries for an asset,
// newest first.
func (s *LedgerStore) ListTransactionsByAssetID(ctx context.Context, assetID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := []domain.Transaction{}
	for i := len(s.entryOrder) - 1; i >= 0; i-- {
		t := s.transactions[s.entryOrder[i]]
		if t.AssetID != nil && *t.AssetID == assetID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// Commit persists one trade or cash movement atomically. The version of
// the incoming wallet and asset must match the stored version; otherwise
// a concurrent commit won and the caller gets util.ErrCommitConflict.
func (s *LedgerStore) Commit(ctx context.Context, write repository.TradeWrite) (*domain.Transaction, error) {
	if write.Wallet == nil || write.Transaction == nil {
		return nil, util.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.wallets[write.Wallet.Username]
	if !ok {
		return nil, util.ErrWalletNotFound
	}
	if stored.Version != write.Wallet.Version {
		return nil, util.ErrCommitConflict
	}

	// Validate everything before writing anything, so a late failure
	// cannot leave a partial commit behind.
	if write.Asset != nil && write.Asset.ID != 0 {
		storedAsset, ok := s.assets[write.Asset.ID]
		if !ok {
			return nil, util.ErrAssetNotFound
		}
		if storedAsset.Version != write.Asset.Version {
			return nil, util.ErrCommitConflict
		}
	}

	if write.Asset != nil {
		if write.Asset.ID == 0 {
			if err := s.createAssetLocked(write.Asset); err != nil {
				return nil, err
			}
		} else {
			write.Asset.Version++
			s.assets[write.Asset.ID] = *write.Asset
		}
		assetID := write.Asset.ID
		write.Transaction.AssetID = &assetID
	}

	write.Wallet.Version++
	s.wallets[write.Wallet.Username] = *write.Wallet

	s.transactions[write.Transaction.ID] = *write.Transaction
	s.entryOrder = append(s.entryOrder, write.Transaction.ID)

	return write.Transaction, nil
}
