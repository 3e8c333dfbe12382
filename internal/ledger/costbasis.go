// internal/ledger/costbasis.go

// Package ledger holds the pure trade-accounting functions: weighted-average
// cost basis and wallet balance guarding. Nothing here touches storage or
// the network; callers apply the returned values inside an atomic commit.
package ledger

import (
	"bigbull-server/internal/domain"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// ApplyBuy returns the new quantity and weighted-average cost per unit for
// a position after buying tradeUnits at tradePrice. The first buy into an
// empty position sets the cost basis to the trade price; later buys blend
// the prior cost with the trade, weighted by quantity. No rounding is done
// here; presentation rounding is the caller's concern.
func ApplyBuy(position *domain.Asset, tradeUnits, tradePrice decimal.Decimal) (newQuantity, newCostPerUnit decimal.Decimal, err error) {
	if tradeUnits.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, util.ErrInvalidQuantity
	}
	if tradePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, util.ErrInvalidPrice
	}

	newQuantity = position.Quantity.Add(tradeUnits)
	if position.Quantity.IsZero() {
		// No prior holding; cost basis is undefined until now.
		return newQuantity, tradePrice, nil
	}

	priorValue := position.Quantity.Mul(position.CostPerUnit)
	tradeValue := tradeUnits.Mul(tradePrice)
	newCostPerUnit = priorValue.Add(tradeValue).Div(newQuantity)
	return newQuantity, newCostPerUnit, nil
}

// ApplySell returns the new quantity after selling tradeUnits. The cost per
// unit is deliberately left untouched by a sell: realized gain/loss is not
// tracked on the position itself.
func ApplySell(position *domain.Asset, tradeUnits decimal.Decimal) (newQuantity decimal.Decimal, err error) {
	if tradeUnits.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, util.ErrInvalidQuantity
	}
	if tradeUnits.GreaterThan(position.Quantity) {
		return decimal.Zero, &util.InsufficientHoldingsError{
			Symbol:    position.Symbol,
			Required:  tradeUnits,
			Available: position.Quantity,
		}
	}
	return position.Quantity.Sub(tradeUnits), nil
}
