// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet represents a user's cash balance plus cumulative invested and
// withdrawn counters. Wallets are keyed by their unique username; a
// single-wallet deployment is simply one fixed username.
type Wallet struct {
	ID             int64           `db:"id" json:"id"`
	Username       string          `db:"username" json:"username"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	TotalInvested  decimal.Decimal `db:"total_invested" json:"total_invested"`
	TotalWithdrawn decimal.Decimal `db:"total_withdrawn" json:"total_withdrawn"`
	Version        int64           `db:"version" json:"-"` // optimistic concurrency token
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates a new Wallet instance with the given starting balance.
func NewWallet(username string, initialBalance decimal.Decimal) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		Username:       username,
		Balance:        initialBalance,
		TotalInvested:  decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
