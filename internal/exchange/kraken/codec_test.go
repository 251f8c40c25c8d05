package kraken

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinharbor/cryptobot/internal/domain"
)

func TestCurrencyCodeRoundTrip(t *testing.T) {
	for _, currency := range domain.Currencies {
		t.Run(string(currency), func(t *testing.T) {
			code, err := krakenCurrencyCode(currency)
			require.NoError(t, err)

			back, err := currencyFromKraken(code)
			require.NoError(t, err)
			assert.Equal(t, currency, back)
		})
	}
}

func TestCurrencyFromKraken_UnknownCode(t *testing.T) {
	_, err := currencyFromKraken("ZCHF")

	var conversionErr *domain.ConversionError
	require.ErrorAs(t, err, &conversionErr)
	assert.Equal(t, "ZCHF", conversionErr.Value)
}

func TestMarketNameRoundTrip(t *testing.T) {
	for _, base := range domain.Currencies {
		for _, quote := range domain.Currencies {
			if base == quote {
				continue
			}
			pair := domain.CurrencyPair{Base: base, Quote: quote}

			t.Run(pair.String(), func(t *testing.T) {
				name, err := marketNameFromPair(pair)
				require.NoError(t, err)

				back, err := pairFromMarketName(name)
				require.NoError(t, err)
				assert.Equal(t, pair, back)
			})
		}
	}
}

func TestPairFromMarketName_AcceptsBothForms(t *testing.T) {
	expected := domain.CurrencyPair{Base: domain.BTC, Quote: domain.EUR}

	for _, name := range []string{"XBTEUR", "XXBTZEUR"} {
		pair, err := pairFromMarketName(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, pair, name)
	}
}

func TestPairFromMarketName_UnknownName(t *testing.T) {
	_, err := pairFromMarketName("DOGEEUR")

	var conversionErr *domain.ConversionError
	require.ErrorAs(t, err, &conversionErr)
}

func TestOrderTypeRoundTrip(t *testing.T) {
	for _, orderType := range []domain.OrderType{domain.OrderTypeBuy, domain.OrderTypeSell} {
		token, err := krakenOrderType(orderType)
		require.NoError(t, err)

		back, err := orderTypeFromKraken(token)
		require.NoError(t, err)
		assert.Equal(t, orderType, back)
	}

	_, err := orderTypeFromKraken("short")
	var conversionErr *domain.ConversionError
	assert.ErrorAs(t, err, &conversionErr)
}

func TestPriceOrderTypeRoundTrip(t *testing.T) {
	for _, priceOrderType := range []domain.PriceOrderType{
		domain.PriceOrderTypeMarket, domain.PriceOrderTypeLimit,
	} {
		token, err := krakenPriceOrderType(priceOrderType)
		require.NoError(t, err)

		back, err := priceOrderTypeFromKraken(token)
		require.NoError(t, err)
		assert.Equal(t, priceOrderType, back)
	}

	_, err := priceOrderTypeFromKraken("stop-loss")
	var conversionErr *domain.ConversionError
	assert.ErrorAs(t, err, &conversionErr)
}

func TestOrderStateFrom(t *testing.T) {
	tests := []struct {
		status     string
		tradeCount int
		expected   domain.OrderState
	}{
		{"pending", 0, domain.OrderStateNew},
		{"pending", 1, domain.OrderStatePartiallyFilled},
		{"pending", 5, domain.OrderStatePartiallyFilled},
		{"open", 0, domain.OrderStateNew},
		{"open", 1, domain.OrderStatePartiallyFilled},
		{"open", 5, domain.OrderStatePartiallyFilled},
		{"closed", 0, domain.OrderStateUnknown},
		{"closed", 1, domain.OrderStateFullyFilled},
		{"closed", 5, domain.OrderStateFullyFilled},
		{"canceled", 0, domain.OrderStateCanceled},
		{"canceled", 1, domain.OrderStatePartiallyFilled},
		{"canceled", 5, domain.OrderStatePartiallyFilled},
		{"expired", 0, domain.OrderStateExpired},
		{"expired", 1, domain.OrderStatePartiallyFilled},
		{"expired", 5, domain.OrderStatePartiallyFilled},
		{"suspended", 0, domain.OrderStateUnknown},
		{"suspended", 5, domain.OrderStateUnknown},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, orderStateFrom(test.status, test.tradeCount),
			"status %s with %d trades", test.status, test.tradeCount)
	}
}

func TestTimeFromEpochSeconds(t *testing.T) {
	t.Run("whole seconds round-trip", func(t *testing.T) {
		parsed, err := timeFromEpochSeconds(json.Number("1583703494"))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2020, 3, 8, 21, 38, 14, 0, time.UTC), parsed)
		assert.Equal(t, int64(1583703494), epochSeconds(parsed))
	})

	t.Run("sub-second part is truncated", func(t *testing.T) {
		parsed, err := timeFromEpochSeconds(json.Number("1583703494.7766"))
		require.NoError(t, err)

		assert.Equal(t, int64(1583703494), epochSeconds(parsed))
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := timeFromEpochSeconds(json.Number("soon"))

		var conversionErr *domain.ConversionError
		assert.ErrorAs(t, err, &conversionErr)
	})
}

func TestOptionalTimeFromEpochSeconds(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		parsed, err := optionalTimeFromEpochSeconds(json.Number(""))
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("zero means no expiration", func(t *testing.T) {
		parsed, err := optionalTimeFromEpochSeconds(json.Number("0"))
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("set", func(t *testing.T) {
		parsed, err := optionalTimeFromEpochSeconds(json.Number("1584913094"))
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, int64(1584913094), epochSeconds(*parsed))
	})
}
