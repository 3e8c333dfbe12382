// internal/util/errors.go
package util

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common application-specific errors.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input provided")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
	ErrInvalidPrice           = errors.New("price must be greater than zero")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInsufficientHoldings   = errors.New("insufficient holdings")
	ErrPriceDataNotFound      = errors.New("price data not found")
	ErrMarketDataUnavailable  = errors.New("market data unavailable")
	ErrCommitConflict         = errors.New("concurrent update conflict")
	ErrCommitFailed           = errors.New("ledger commit failed")
	ErrDuplicateEntry         = errors.New("duplicate entry")
)

// InsufficientBalanceError reports a rejected debit. It matches
// ErrInsufficientBalance under errors.Is so handlers can map it by kind.
type InsufficientBalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// InsufficientHoldingsError reports a sell of more units than are held.
type InsufficientHoldingsError struct {
	Symbol    string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings of %s: required %s, available %s", e.Symbol, e.Required, e.Available)
}

func (e *InsufficientHoldingsError) Is(target error) bool {
	return target == ErrInsufficientHoldings
}

// PriceDataNotFoundError reports a quote payload that was missing or
// malformed for the symbol. The quote service itself responded.
type PriceDataNotFoundError struct {
	Symbol string
}

func (e *PriceDataNotFoundError) Error() string {
	return fmt.Sprintf("price data not found for %s", e.Symbol)
}

func (e *PriceDataNotFoundError) Is(target error) bool {
	return target == ErrPriceDataNotFound
}

// MarketDataUnavailableError reports that the quote service could not be
// reached or returned an error response.
type MarketDataUnavailableError struct {
	Symbol string
	Err    error
}

func (e *MarketDataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("market data unavailable for %s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("market data unavailable for %s", e.Symbol)
}

func (e *MarketDataUnavailableError) Is(target error) bool {
	return target == ErrMarketDataUnavailable
}

func (e *MarketDataUnavailableError) Unwrap() error { return e.Err }

// IsError checks whether err matches the target error kind.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
