package kraken

import (
	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/exchange"
)

// defaultPrecision is the conservative fallback for markets without an
// explicit entry.
var defaultPrecision = exchange.Precision{Price: 5, Volume: 8}

// marketPrecisions holds the decimal places the exchange accepts per
// market. Values verified against order placements on the live API.
var marketPrecisions = map[domain.CurrencyPair]exchange.Precision{
	{Base: domain.BTC, Quote: domain.EUR}: {Price: 5, Volume: 8},
	{Base: domain.BTC, Quote: domain.USD}: {Price: 5, Volume: 8},
	{Base: domain.ETH, Quote: domain.EUR}: {Price: 5, Volume: 8},
	{Base: domain.LTC, Quote: domain.EUR}: {Price: 5, Volume: 8},
	{Base: domain.XRP, Quote: domain.EUR}: {Price: 8, Volume: 8},
}

func precisionFor(pair domain.CurrencyPair) exchange.Precision {
	if precision, ok := marketPrecisions[pair]; ok {
		return precision
	}
	return defaultPrecision
}
