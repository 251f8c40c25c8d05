package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"configuration error: unknown platform",
		(&ConfigurationError{Reason: "unknown platform"}).Error())

	assert.Equal(t,
		"conversion error: unsupported kraken currency code [ZCHF]",
		(&ConversionError{What: "kraken currency code", Value: "ZCHF"}).Error())

	assert.Equal(t,
		"exchange error [Ticker]: EService:Unavailable",
		(&ExchangeError{Op: "Ticker", Messages: []string{"EService:Unavailable"}}).Error())

	assert.Equal(t,
		"notification error: webhook responded with status 404",
		(&NotificationError{StatusCode: 404}).Error())
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("placing order: %w", &ExchangeError{Op: "AddOrder", Err: cause})

	assert.True(t, IsExchangeError(err))
	assert.False(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("run failed: %w", &ConfigurationError{Reason: "missing key"})
	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsExchangeError(wrapped))
}
