package kraken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/exchange"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		APIKey: "test-key",
		// Base64 of an arbitrary test secret.
		Secret:  "dGVzdC1zZWNyZXQ=",
		BaseURL: server.URL,
	})
	client.nonce = func() int64 { return 1616492376594 }

	return client
}

func TestPublic_GetTicker(t *testing.T) {
	pair := domain.CurrencyPair{Base: domain.BTC, Quote: domain.EUR}

	t.Run("parses ask and bid", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/0/public/Ticker", r.URL.Path)
			assert.Equal(t, "XBTEUR", r.URL.Query().Get("pair"))

			w.Write([]byte(`{
				"error": [],
				"result": {
					"XXBTZEUR": {
						"a": ["8903.300000", "1", "1.000"],
						"b": ["8902.400000", "1", "1.000"]
					}
				}
			}`))
		})

		ticker, err := NewPublicFacade(client).GetTicker(context.Background(), pair)
		require.NoError(t, err)

		assert.Equal(t, "XXBTZEUR", ticker.MarketName)
		assert.True(t, ticker.AskPrice.Equal(decimal.RequireFromString("8903.3")),
			"ask price %s", ticker.AskPrice)
		assert.True(t, ticker.BidPrice.Equal(decimal.RequireFromString("8902.4")),
			"bid price %s", ticker.BidPrice)
	})

	t.Run("non-empty error list fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": ["EService:Unavailable"], "result": null}`))
		})

		_, err := NewPublicFacade(client).GetTicker(context.Background(), pair)

		var exchangeErr *domain.ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Contains(t, err.Error(), "EService:Unavailable")
	})

	t.Run("more than one market fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"error": [],
				"result": {
					"XXBTZEUR": {"a": ["1"], "b": ["1"]},
					"XETHZEUR": {"a": ["1"], "b": ["1"]}
				}
			}`))
		})

		_, err := NewPublicFacade(client).GetTicker(context.Background(), pair)

		var exchangeErr *domain.ExchangeError
		assert.ErrorAs(t, err, &exchangeErr)
	})

	t.Run("HTTP error status fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := NewPublicFacade(client).GetTicker(context.Background(), pair)

		var exchangeErr *domain.ExchangeError
		assert.ErrorAs(t, err, &exchangeErr)
	})

	t.Run("malformed envelope fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		})

		_, err := NewPublicFacade(client).GetTicker(context.Background(), pair)

		var exchangeErr *domain.ExchangeError
		assert.ErrorAs(t, err, &exchangeErr)
	})
}

func TestPublic_Precision(t *testing.T) {
	public := NewPublicFacade(NewClient(ClientConfig{}))

	assert.Equal(t,
		exchange.Precision{Price: 5, Volume: 8},
		public.Precision(domain.CurrencyPair{Base: domain.BTC, Quote: domain.EUR}))

	// Markets without an explicit entry get the conservative default.
	assert.Equal(t,
		exchange.Precision{Price: 5, Volume: 8},
		public.Precision(domain.CurrencyPair{Base: domain.ETH, Quote: domain.USD}))
}
