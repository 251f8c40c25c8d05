package domain

import "fmt"

// Currency is one of the supported currency codes. The set is closed:
// adding a venue that trades other assets means extending this list and
// the venue's codec tables together.
type Currency string

const (
	BTC Currency = "BTC"
	ETH Currency = "ETH"
	LTC Currency = "LTC"
	XRP Currency = "XRP"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// Currencies lists every supported currency.
var Currencies = []Currency{BTC, ETH, LTC, XRP, EUR, USD}

// ParseCurrency resolves a 3-letter label to a supported Currency.
func ParseCurrency(label string) (Currency, error) {
	for _, c := range Currencies {
		if string(c) == label {
			return c, nil
		}
	}
	return "", &ConfigurationError{Reason: fmt.Sprintf("unknown currency label %q", label)}
}

// CurrencyPair names a market as an ordered (base, quote) pair.
// Base must differ from quote.
type CurrencyPair struct {
	Base  Currency
	Quote Currency
}

// NewCurrencyPair builds a pair from two labels, rejecting unknown labels
// and equal base/quote.
func NewCurrencyPair(baseLabel, quoteLabel string) (CurrencyPair, error) {
	base, err := ParseCurrency(baseLabel)
	if err != nil {
		return CurrencyPair{}, err
	}
	quote, err := ParseCurrency(quoteLabel)
	if err != nil {
		return CurrencyPair{}, err
	}
	if base == quote {
		return CurrencyPair{}, &ConfigurationError{
			Reason: fmt.Sprintf("base and quote currency must differ, got %s/%s", base, quote),
		}
	}
	return CurrencyPair{Base: base, Quote: quote}, nil
}

func (p CurrencyPair) String() string {
	return string(p.Base) + "/" + string(p.Quote)
}
