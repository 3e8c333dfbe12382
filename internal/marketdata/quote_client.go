// internal/marketdata/quote_client.go
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"bigbull-server/internal/domain"
	"bigbull-server/internal/util"

	"github.com/shopspring/decimal"
)

// QuoteClient fetches live prices over HTTP from the quote API and caches
// them briefly so repeated trades on the same symbol don't hammer the
// provider.
type QuoteClient struct {
	baseURL string
	cli     *http.Client
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote   Quote
	fetched time.Time
}

// quotePayload is the wire shape of the quote API response.
type quotePayload struct {
	Symbol   string           `json:"symbol"`
	Price    *decimal.Decimal `json:"price"`
	Currency string           `json:"currency"`
}

// NewQuoteClient creates a QuoteClient for the given quote API base URL.
func NewQuoteClient(baseURL string, timeout, ttl time.Duration) *QuoteClient {
	return &QuoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		cli:     &http.Client{Timeout: timeout},
		ttl:     ttl,
		cache:   make(map[string]cachedQuote),
	}
}

// GetPrice returns the current quote for symbol. Crypto symbols are routed
// to the crypto endpoint, everything else to the stock endpoint.
func (c *QuoteClient) GetPrice(ctx context.Context, symbol string, assetType domain.AssetType) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, &util.PriceDataNotFoundError{Symbol: symbol}
	}

	c.mu.RLock()
	if cached, ok := c.cache[symbol]; ok && time.Since(cached.fetched) < c.ttl {
		c.mu.RUnlock()
		return cached.quote, nil
	}
	c.mu.RUnlock()

	endpoint := "/stock/quote/"
	if assetType == domain.AssetTypeCrypto {
		endpoint = "/crypto/quote/"
	}
	url := c.baseURL + endpoint + symbol

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, &util.MarketDataUnavailableError{Symbol: symbol, Err: err}
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		return Quote{}, &util.MarketDataUnavailableError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Quote{}, &util.PriceDataNotFoundError{Symbol: symbol}
	case resp.StatusCode != http.StatusOK:
		return Quote{}, &util.MarketDataUnavailableError{
			Symbol: symbol,
			Err:    fmt.Errorf("quote api returned status %d", resp.StatusCode),
		}
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, &util.PriceDataNotFoundError{Symbol: symbol}
	}
	if payload.Price == nil || payload.Price.LessThanOrEqual(decimal.Zero) {
		return Quote{}, &util.PriceDataNotFoundError{Symbol: symbol}
	}

	quote := Quote{
		Symbol:   symbol,
		Price:    *payload.Price,
		Currency: payload.Currency,
		AsOf:     time.Now().UTC(),
	}

	c.mu.Lock()
	c.cache[symbol] = cachedQuote{quote: quote, fetched: time.Now()}
	c.mu.Unlock()

	return quote, nil
}
