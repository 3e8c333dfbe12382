// internal/ledger/costbasis_test.go
package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/util"
)

func position(quantity, costPerUnit string) *domain.Asset {
	asset := domain.NewAsset("RELIANCE", "Reliance Industries", domain.AssetTypeStock)
	asset.Quantity = decimal.RequireFromString(quantity)
	asset.CostPerUnit = decimal.RequireFromString(costPerUnit)
	return asset
}

func TestApplyBuy_FirstBuySetsCostBasis(t *testing.T) {
	asset := position("0", "0")

	newQuantity, newCost, err := ApplyBuy(asset, decimal.NewFromInt(10), decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.True(t, newQuantity.Equal(decimal.NewFromInt(10)), "quantity: %s", newQuantity)
	assert.True(t, newCost.Equal(decimal.NewFromInt(100)), "cost: %s", newCost)
}

func TestApplyBuy_WeightedAverage(t *testing.T) {
	// 10 units at 100, then 10 units at 200: average must be exactly 150.
	asset := position("10", "100")

	newQuantity, newCost, err := ApplyBuy(asset, decimal.NewFromInt(10), decimal.NewFromInt(200))

	require.NoError(t, err)
	assert.True(t, newQuantity.Equal(decimal.NewFromInt(20)), "quantity: %s", newQuantity)
	assert.True(t, newCost.Equal(decimal.NewFromInt(150)), "cost: %s", newCost)
}

func TestApplyBuy_FractionalUnits(t *testing.T) {
	asset := position("0.5", "40000")

	newQuantity, newCost, err := ApplyBuy(asset, decimal.RequireFromString("0.5"), decimal.NewFromInt(60000))

	require.NoError(t, err)
	assert.True(t, newQuantity.Equal(decimal.NewFromInt(1)), "quantity: %s", newQuantity)
	assert.True(t, newCost.Equal(decimal.NewFromInt(50000)), "cost: %s", newCost)
}

func TestApplyBuy_InputIsNotMutated(t *testing.T) {
	asset := position("10", "100")

	_, _, err := ApplyBuy(asset, decimal.NewFromInt(5), decimal.NewFromInt(120))

	require.NoError(t, err)
	assert.True(t, asset.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, asset.CostPerUnit.Equal(decimal.NewFromInt(100)))
}

func TestApplyBuy_RejectsNonPositiveQuantity(t *testing.T) {
	asset := position("10", "100")

	_, _, err := ApplyBuy(asset, decimal.Zero, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, util.ErrInvalidQuantity)

	_, _, err = ApplyBuy(asset, decimal.NewFromInt(-1), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, util.ErrInvalidQuantity)
}

func TestApplyBuy_RejectsNonPositivePrice(t *testing.T) {
	asset := position("10", "100")

	_, _, err := ApplyBuy(asset, decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, util.ErrInvalidPrice)

	_, _, err = ApplyBuy(asset, decimal.NewFromInt(1), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, util.ErrInvalidPrice)
}

func TestApplySell_ReducesQuantity(t *testing.T) {
	asset := position("10", "150")

	newQuantity, err := ApplySell(asset, decimal.NewFromInt(4))

	require.NoError(t, err)
	assert.True(t, newQuantity.Equal(decimal.NewFromInt(6)), "quantity: %s", newQuantity)
	// A sell never touches the cost basis.
	assert.True(t, asset.CostPerUnit.Equal(decimal.NewFromInt(150)))
}

func TestApplySell_ExactlyAllUnits(t *testing.T) {
	asset := position("5", "120")

	newQuantity, err := ApplySell(asset, decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.True(t, newQuantity.IsZero())
}

func TestApplySell_RejectsOversell(t *testing.T) {
	asset := position("5", "120")

	_, err := ApplySell(asset, decimal.NewFromInt(6))

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrInsufficientHoldings)

	var holdingsErr *util.InsufficientHoldingsError
	require.True(t, errors.As(err, &holdingsErr))
	assert.Equal(t, "RELIANCE", holdingsErr.Symbol)
	assert.True(t, holdingsErr.Required.Equal(decimal.NewFromInt(6)))
	assert.True(t, holdingsErr.Available.Equal(decimal.NewFromInt(5)))
}

func TestApplySell_RejectsNonPositiveQuantity(t *testing.T) {
	asset := position("5", "120")

	_, err := ApplySell(asset, decimal.Zero)
	assert.ErrorIs(t, err, util.ErrInvalidQuantity)

	_, err = ApplySell(asset, decimal.NewFromInt(-2))
	assert.ErrorIs(t, err, util.ErrInvalidQuantity)
}
