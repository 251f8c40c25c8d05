package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/exchange"
)

// Public is the market-data facade over the Kraken connector.
type Public struct {
	client *Client
}

func NewPublicFacade(client *Client) *Public {
	return &Public{client: client}
}

// GetTicker returns the current best ask and bid for the market. The
// result map is required to contain exactly one entry; its key becomes
// the ticker's market name.
func (f *Public) GetTicker(ctx context.Context, pair domain.CurrencyPair) (*domain.Ticker, error) {
	const op = "Ticker"

	marketName, err := marketNameFromPair(pair)
	if err != nil {
		return nil, err
	}

	raw, err := f.client.queryPublic(ctx, op, url.Values{"pair": {marketName}})
	if err != nil {
		return nil, err
	}

	var result map[string]tickerData
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ExchangeError{Op: op, Err: fmt.Errorf("malformed result: %w", err)}
	}

	if len(result) != 1 {
		return nil, &domain.ExchangeError{
			Op:  op,
			Err: fmt.Errorf("expected exactly one market in result, got %d", len(result)),
		}
	}

	for name, data := range result {
		if len(data.Ask) == 0 || len(data.Bid) == 0 {
			return nil, &domain.ExchangeError{
				Op:  op,
				Err: fmt.Errorf("market %s is missing ask or bid data", name),
			}
		}

		askPrice, err := parseDecimal(data.Ask[0], "ask price")
		if err != nil {
			return nil, err
		}
		bidPrice, err := parseDecimal(data.Bid[0], "bid price")
		if err != nil {
			return nil, err
		}

		return &domain.Ticker{
			MarketName: name,
			AskPrice:   askPrice,
			BidPrice:   bidPrice,
		}, nil
	}

	// Unreachable: the map has exactly one entry.
	return nil, &domain.InternalError{Err: fmt.Errorf("empty ticker result for %s", marketName)}
}

// Precision returns the price and volume precision for the market.
func (f *Public) Precision(pair domain.CurrencyPair) exchange.Precision {
	return precisionFor(pair)
}
