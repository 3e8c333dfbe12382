// internal/service/asset_service_test.go
package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/repository/memory"
	"bigbull-server/internal/util"
)

func newAssetService(t *testing.T, prices map[string]decimal.Decimal) (AssetService, *memory.LedgerStore, *stubPriceSource) {
	t.Helper()
	store := memory.NewLedgerStore()
	source := &stubPriceSource{prices: prices}
	return NewAssetService(store, source, slog.New(slog.NewTextHandler(io.Discard, nil))), store, source
}

func TestRegisterAsset(t *testing.T) {
	svc, _, _ := newAssetService(t, nil)

	asset, err := svc.RegisterAsset(context.Background(), "RELIANCE", "Reliance Industries", domain.AssetTypeStock)

	require.NoError(t, err)
	assert.NotZero(t, asset.ID)
	assert.True(t, asset.Quantity.IsZero())
	assert.True(t, asset.CostPerUnit.IsZero())
}

func TestRegisterAsset_Validation(t *testing.T) {
	svc, _, _ := newAssetService(t, nil)
	ctx := context.Background()

	_, err := svc.RegisterAsset(ctx, "", "Reliance", domain.AssetTypeStock)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.RegisterAsset(ctx, "RELIANCE", "", domain.AssetTypeStock)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.RegisterAsset(ctx, "RELIANCE", "Reliance", domain.AssetType("BOND"))
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestRegisterAsset_DuplicateSymbol(t *testing.T) {
	svc, _, _ := newAssetService(t, nil)
	ctx := context.Background()

	_, err := svc.RegisterAsset(ctx, "TCS", "Tata Consultancy", domain.AssetTypeStock)
	require.NoError(t, err)

	_, err = svc.RegisterAsset(ctx, "TCS", "Tata Consultancy", domain.AssetTypeStock)
	assert.ErrorIs(t, err, util.ErrDuplicateEntry)
}

func TestGetAssetSummary_ValuesAtLivePrice(t *testing.T) {
	svc, _, _ := newAssetService(t, map[string]decimal.Decimal{
		"RELIANCE": decimal.NewFromInt(120),
	})

	asset := domain.NewAsset("RELIANCE", "Reliance Industries", domain.AssetTypeStock)
	asset.Quantity = decimal.NewFromInt(10)
	asset.CostPerUnit = decimal.NewFromInt(100)

	summary := svc.GetAssetSummary(context.Background(), asset)

	assert.True(t, summary.CurrentPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.TotalCostValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.UnrealizedGain.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.GainPercentage.Equal(decimal.NewFromInt(20)), "gain %%: %s", summary.GainPercentage)
}

func TestGetAssetSummary_FallsBackToCostWhenQuoteFails(t *testing.T) {
	svc, _, source := newAssetService(t, nil)
	source.err = &util.MarketDataUnavailableError{Symbol: "RELIANCE"}

	asset := domain.NewAsset("RELIANCE", "Reliance Industries", domain.AssetTypeStock)
	asset.Quantity = decimal.NewFromInt(10)
	asset.CostPerUnit = decimal.NewFromInt(100)

	summary := svc.GetAssetSummary(context.Background(), asset)

	assert.True(t, summary.CurrentPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.UnrealizedGain.IsZero())
	assert.True(t, summary.GainPercentage.IsZero())
}

func TestDeleteAsset_Service(t *testing.T) {
	svc, _, _ := newAssetService(t, nil)
	ctx := context.Background()
	asset, err := svc.RegisterAsset(ctx, "TCS", "Tata Consultancy", domain.AssetTypeStock)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, asset.ID))

	_, err = svc.GetAsset(ctx, asset.ID)
	assert.ErrorIs(t, err, util.ErrAssetNotFound)
}
