// Package config resolves the run configuration from CLI flags with an
// environment fallback for values better kept off the command line.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/coinharbor/cryptobot/internal/domain"
)

// Flag names. The volume flag keeps its historical name even though the
// value is interpreted as a quote-currency amount; see its usage text.
const (
	FlagTradingPlatformName   = "trading-platform-name"
	FlagTradingPlatformKey    = "trading-platform-key"
	FlagTradingPlatformSecret = "trading-platform-secret"
	FlagBaseCurrency          = "base-currency"
	FlagQuoteCurrency         = "quote-currency"
	FlagVolumePerRun          = "volume-in-base-currency-to-invest-per-run"
	FlagOffsetRatio           = "offset-ratio-of-limit-price-to-bid-price-in-decimal"
	FlagSlackWebhookURL       = "slack-webhook-url"
	FlagLogLevel              = "log-level"
)

// envPrefix is prepended to the upper-snake-cased flag name, e.g.
// CRYPTOBOT_TRADING_PLATFORM_KEY.
const envPrefix = "CRYPTOBOT"

// Config is the fully validated run configuration.
type Config struct {
	PlatformName   string
	PlatformKey    string
	PlatformSecret string

	BaseCurrency  string
	QuoteCurrency string

	// VolumeInQuotePerRun is the amount of quote currency to invest per
	// run, despite the name of the flag it is read from.
	VolumeInQuotePerRun decimal.Decimal

	// OffsetRatio reduces the bid price to the limit price, in [0, 1).
	OffsetRatio decimal.Decimal

	SlackWebhookURL string
	LogLevel        string
}

// FromCLI builds the configuration from parsed CLI flags, falling back
// to CRYPTOBOT_* environment variables for flags that were not set.
func FromCLI(c *cli.Context) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		PlatformName:    stringValue(c, v, FlagTradingPlatformName),
		PlatformKey:     stringValue(c, v, FlagTradingPlatformKey),
		PlatformSecret:  stringValue(c, v, FlagTradingPlatformSecret),
		BaseCurrency:    stringValue(c, v, FlagBaseCurrency),
		QuoteCurrency:   stringValue(c, v, FlagQuoteCurrency),
		SlackWebhookURL: stringValue(c, v, FlagSlackWebhookURL),
		LogLevel:        c.String(FlagLogLevel),
	}

	for flag, value := range map[string]string{
		FlagTradingPlatformName:   cfg.PlatformName,
		FlagTradingPlatformKey:    cfg.PlatformKey,
		FlagTradingPlatformSecret: cfg.PlatformSecret,
		FlagBaseCurrency:          cfg.BaseCurrency,
		FlagQuoteCurrency:         cfg.QuoteCurrency,
	} {
		if value == "" {
			return nil, &domain.ConfigurationError{
				Reason: fmt.Sprintf("required option --%s is missing", flag),
			}
		}
	}

	var err error

	volume := stringValue(c, v, FlagVolumePerRun)
	if volume == "" {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("required option --%s is missing", FlagVolumePerRun),
		}
	}
	cfg.VolumeInQuotePerRun, err = decimal.NewFromString(volume)
	if err != nil {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("option --%s is not a decimal", FlagVolumePerRun),
			Err:    err,
		}
	}
	if !cfg.VolumeInQuotePerRun.IsPositive() {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("option --%s must be positive, got %s", FlagVolumePerRun, cfg.VolumeInQuotePerRun),
		}
	}

	offset := stringValue(c, v, FlagOffsetRatio)
	if offset == "" {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("required option --%s is missing", FlagOffsetRatio),
		}
	}
	cfg.OffsetRatio, err = decimal.NewFromString(offset)
	if err != nil {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("option --%s is not a decimal", FlagOffsetRatio),
			Err:    err,
		}
	}
	if cfg.OffsetRatio.IsNegative() || cfg.OffsetRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("option --%s must be in [0, 1), got %s", FlagOffsetRatio, cfg.OffsetRatio),
		}
	}

	if cfg.BaseCurrency == cfg.QuoteCurrency {
		return nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("base and quote currency must differ, got %s", cfg.BaseCurrency),
		}
	}

	return cfg, nil
}

// stringValue prefers the CLI flag and falls back to the matching
// environment variable.
func stringValue(c *cli.Context, v *viper.Viper, flag string) string {
	if value := c.String(flag); value != "" {
		return value
	}
	return v.GetString(flag)
}
