// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeBuy        TransactionType = "BUY"
	TransactionTypeSell       TransactionType = "SELL"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Transaction is an immutable, audit-quality ledger entry for one executed
// trade or cash movement. Records are only ever appended, never updated.
type Transaction struct {
	ID              string          `db:"id" json:"id"` // generated UUID
	Username        string          `db:"username" json:"username"`
	AssetID         *int64          `db:"asset_id" json:"asset_id"` // nil for cash entries
	Symbol          *string         `db:"symbol" json:"symbol"`     // nil for cash entries
	Type            TransactionType `db:"type" json:"type"`
	Units           decimal.Decimal `db:"units" json:"units"`
	PricePerUnit    decimal.Decimal `db:"price_per_unit" json:"price_per_unit"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	TransactionTime time.Time       `db:"transaction_time" json:"transaction_time"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// NewTradeTransaction creates a BUY or SELL ledger entry for an asset.
// TotalAmount is always units * pricePerUnit.
func NewTradeTransaction(username string, asset *Asset, txType TransactionType, units, pricePerUnit decimal.Decimal) *Transaction {
	now := time.Now().UTC()
	symbol := asset.Symbol
	t := &Transaction{
		ID:              uuid.NewString(),
		Username:        username,
		Symbol:          &symbol,
		Type:            txType,
		Units:           units,
		PricePerUnit:    pricePerUnit,
		TotalAmount:     units.Mul(pricePerUnit),
		TransactionTime: now,
		CreatedAt:       now,
	}
	if asset.ID != 0 {
		id := asset.ID
		t.AssetID = &id
	}
	return t
}

// NewCashTransaction creates a DEPOSIT or WITHDRAWAL ledger entry.
func NewCashTransaction(username string, txType TransactionType, amount decimal.Decimal) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:              uuid.NewString(),
		Username:        username,
		Type:            txType,
		Units:           amount,
		PricePerUnit:    decimal.NewFromInt(1),
		TotalAmount:     amount,
		TransactionTime: now,
		CreatedAt:       now,
	}
}

// TransactionResult is returned to callers after a successful trade: the
// committed ledger entry plus the post-trade wallet and position state.
type TransactionResult struct {
	Transaction   *Transaction    `json:"transaction"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	AssetQuantity decimal.Decimal `json:"asset_quantity"`
	Message       string          `json:"message"`
}
