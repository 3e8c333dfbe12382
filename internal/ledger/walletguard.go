// internal/ledger/walletguard.go
package ledger

import (
	"time"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// CanAfford reports whether the wallet balance covers amount.
func CanAfford(wallet *domain.Wallet, amount decimal.Decimal) bool {
	return wallet.Balance.GreaterThanOrEqual(amount)
}

// Debit returns a copy of the wallet with amount removed from the balance
// and added to the cumulative invested counter. The input wallet is not
// modified. Fails before any change when the balance is insufficient.
func Debit(wallet domain.Wallet, amount decimal.Decimal) (domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Wallet{}, util.ErrInvalidAmount
	}
	if !CanAfford(&wallet, amount) {
		return domain.Wallet{}, &util.InsufficientBalanceError{
			Required:  amount,
			Available: wallet.Balance,
		}
	}
	wallet.Balance = wallet.Balance.Sub(amount)
	wallet.TotalInvested = wallet.TotalInvested.Add(amount)
	wallet.UpdatedAt = time.Now().UTC()
	return wallet, nil
}

// Credit returns a copy of the wallet with amount added to the balance and
// to the cumulative withdrawn counter.
func Credit(wallet domain.Wallet, amount decimal.Decimal) (domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Wallet{}, util.ErrInvalidAmount
	}
	wallet.Balance = wallet.Balance.Add(amount)
	wallet.TotalWithdrawn = wallet.TotalWithdrawn.Add(amount)
	wallet.UpdatedAt = time.Now().UTC()
	return wallet, nil
}
