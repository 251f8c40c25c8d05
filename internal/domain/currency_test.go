package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	for _, currency := range Currencies {
		parsed, err := ParseCurrency(string(currency))
		require.NoError(t, err)
		assert.Equal(t, currency, parsed)
	}

	_, err := ParseCurrency("DOGE")
	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)

	// Labels are case sensitive.
	_, err = ParseCurrency("btc")
	assert.Error(t, err)
}

func TestNewCurrencyPair(t *testing.T) {
	t.Run("valid pair", func(t *testing.T) {
		pair, err := NewCurrencyPair("BTC", "EUR")
		require.NoError(t, err)
		assert.Equal(t, CurrencyPair{Base: BTC, Quote: EUR}, pair)
		assert.Equal(t, "BTC/EUR", pair.String())
	})

	t.Run("base must differ from quote", func(t *testing.T) {
		_, err := NewCurrencyPair("EUR", "EUR")

		var configErr *ConfigurationError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("unknown labels", func(t *testing.T) {
		_, err := NewCurrencyPair("DOGE", "EUR")
		assert.Error(t, err)

		_, err = NewCurrencyPair("BTC", "KRW")
		assert.Error(t, err)
	})
}
