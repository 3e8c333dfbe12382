// internal/api/api_integration_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigbull-server/internal/api/handler"
	"bigbull-server/internal/domain"
	"bigbull-server/internal/marketdata"
	"bigbull-server/internal/repository/memory"
	"bigbull-server/internal/service"
)

// fixedPriceSource serves one price for every symbol.
type fixedPriceSource struct {
	price decimal.Decimal
}

func (f *fixedPriceSource) GetPrice(ctx context.Context, symbol string, assetType domain.AssetType) (marketdata.Quote, error) {
	return marketdata.Quote{Symbol: symbol, Price: f.price, Currency: "INR", AsOf: time.Now().UTC()}, nil
}

// newTestServer wires the full stack over an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewLedgerStore()
	prices := &fixedPriceSource{price: decimal.NewFromInt(100)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	walletSvc := service.NewWalletService(store, logger)
	assetSvc := service.NewAssetService(store, prices, logger)
	txSvc := service.NewTransactionService(store, prices, logger)
	portfolioSvc := service.NewPortfolioService(store, assetSvc, logger)

	router := NewRouter(Handlers{
		Wallet:      handler.NewWalletHandler(walletSvc, logger),
		Asset:       handler.NewAssetHandler(assetSvc, logger),
		Transaction: handler.NewTransactionHandler(txSvc, logger),
		Portfolio:   handler.NewPortfolioHandler(portfolioSvc, logger),
	}, logger)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWalletLifecycle(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"alice","initial_balance":"1000"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/wallet/deposit", `{"username":"alice","amount":"250"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deposit map[string]interface{}
	decodeBody(t, resp, &deposit)
	assert.Equal(t, "1250", fmt.Sprint(deposit["new_balance"]))

	resp = postJSON(t, server.URL+"/api/wallet/withdraw", `{"username":"alice","amount":"10000"}`)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/wallet/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var wallet domain.Wallet
	decodeBody(t, resp, &wallet)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(1250)))

	resp, err = http.Get(server.URL + "/api/wallet/ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestWalletCreate_Validation(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"","initial_balance":"100"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/wallet/create", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTradeRoundTrip(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"alice","initial_balance":"1000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Buy 5 units of RELIANCE at the supplied price.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"BUY","units":"5","price":"100"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buy domain.TransactionResult
	decodeBody(t, resp, &buy)
	assert.True(t, buy.WalletBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, buy.AssetQuantity.Equal(decimal.NewFromInt(5)))

	// Sell all of it at 120.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"SELL","units":"5","price":"120"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sell domain.TransactionResult
	decodeBody(t, resp, &sell)
	assert.True(t, sell.WalletBalance.Equal(decimal.NewFromInt(1100)))
	assert.True(t, sell.AssetQuantity.IsZero())

	// Look the entry back up by ID.
	resp, err := http.Get(server.URL + "/api/transactions/" + sell.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var entry domain.Transaction
	decodeBody(t, resp, &entry)
	assert.Equal(t, domain.TransactionTypeSell, entry.Type)

	// Paginated per-user history.
	resp, err = http.Get(server.URL + "/api/transactions/user/alice?limit=1&offset=0")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Data       []domain.Transaction `json:"data"`
		TotalCount int64                `json:"total_count"`
	}
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(2), page.TotalCount)
	require.Len(t, page.Data, 1)
	assert.Equal(t, domain.TransactionTypeSell, page.Data[0].Type)
}

func TestTrade_ErrorStatusCodes(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"alice","initial_balance":"100"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Unknown transaction type.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"HOLD","units":"1","price":"10"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Non-positive quantity.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"BUY","units":"0","price":"10"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Cannot afford.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"BUY","units":"5","price":"100"}`)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	resp.Body.Close()

	// Selling an unknown symbol.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"NOSUCH","type":"SELL","units":"1","price":"10"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Unknown wallet.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"ghost","symbol":"RELIANCE","type":"BUY","units":"1","price":"10"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAssetCatalogEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/assets/", `{"symbol":"TCS","name":"Tata Consultancy","type":"STOCK"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Asset
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)

	resp = postJSON(t, server.URL+"/api/assets/", `{"symbol":"TCS","name":"Tata Consultancy","type":"STOCK"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/assets/search?query=tata")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found []domain.Asset
	decodeBody(t, resp, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "TCS", found[0].Symbol)

	resp, err = http.Get(server.URL + "/api/assets/symbol/TCS")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/assets/%d", server.URL, created.ID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/assets/symbol/TCS")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBuySellByAssetID(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"alice","initial_balance":"1000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/assets/", `{"symbol":"INFY","name":"Infosys","type":"STOCK"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var asset domain.Asset
	decodeBody(t, resp, &asset)

	body := fmt.Sprintf(`{"username":"alice","asset_id":%d,"units":"2","price":"100"}`, asset.ID)
	resp = postJSON(t, server.URL+"/api/assets/buy", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buy domain.TransactionResult
	decodeBody(t, resp, &buy)
	assert.True(t, buy.WalletBalance.Equal(decimal.NewFromInt(800)))

	body = fmt.Sprintf(`{"username":"alice","asset_id":%d,"units":"2","price":"110"}`, asset.ID)
	resp = postJSON(t, server.URL+"/api/assets/sell", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sell domain.TransactionResult
	decodeBody(t, resp, &sell)
	assert.True(t, sell.WalletBalance.Equal(decimal.NewFromInt(1020)))
}

func TestPortfolioEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/wallet/create", `{"username":"alice","initial_balance":"1000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Live price is fixed at 100 by the test price source.
	resp = postJSON(t, server.URL+"/api/transactions", `{"username":"alice","symbol":"RELIANCE","type":"BUY","units":"5"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/portfolio/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var summary domain.PortfolioSummary
	decodeBody(t, resp, &summary)
	assert.True(t, summary.WalletBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.PortfolioValue.Equal(decimal.NewFromInt(500)))
	require.Len(t, summary.Assets, 1)
	assert.Equal(t, "RELIANCE", summary.Assets[0].Symbol)
}
