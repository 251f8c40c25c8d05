package kraken

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/exchange"
)

// Private is the authenticated facade over the Kraken connector.
type Private struct {
	client *Client
	now    func() time.Time
}

func NewPrivateFacade(client *Client) *Private {
	return &Private{client: client, now: time.Now}
}

// GetAccountBalance returns the balance per supported currency. Balances
// held in currencies outside the supported set are dropped.
func (f *Private) GetAccountBalance(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	const op = "Balance"

	raw, err := f.client.queryPrivate(ctx, op, nil)
	if err != nil {
		return nil, err
	}

	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ExchangeError{Op: op, Err: fmt.Errorf("malformed result: %w", err)}
	}

	balances := make(map[domain.Currency]decimal.Decimal)
	for code, amount := range result {
		currency, err := currencyFromKraken(code)
		if err != nil {
			var conversionErr *domain.ConversionError
			if errors.As(err, &conversionErr) {
				continue
			}
			return nil, err
		}

		balance, err := parseDecimal(amount, "balance")
		if err != nil {
			return nil, err
		}
		balances[currency] = balance
	}

	return balances, nil
}

// GetOpenOrders returns the currently open orders.
func (f *Private) GetOpenOrders(ctx context.Context, includeTrades bool) ([]domain.OpenOrder, error) {
	const op = "OpenOrders"

	params := url.Values{"trades": {strconv.FormatBool(includeTrades)}}
	raw, err := f.client.queryPrivate(ctx, op, params)
	if err != nil {
		return nil, err
	}

	var result openOrdersResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ExchangeError{Op: op, Err: fmt.Errorf("malformed result: %w", err)}
	}

	orders := make([]domain.OpenOrder, 0, len(result.Open))
	for id, data := range result.Open {
		order, err := openOrderFromData(id, data)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// GetClosedOrders returns orders closed since from (UTC).
func (f *Private) GetClosedOrders(ctx context.Context, includeTrades bool, from time.Time) ([]domain.ClosedOrder, error) {
	const op = "ClosedOrders"

	params := url.Values{
		"trades": {strconv.FormatBool(includeTrades)},
		"start":  {strconv.FormatInt(epochSeconds(from), 10)},
	}
	raw, err := f.client.queryPrivate(ctx, op, params)
	if err != nil {
		return nil, err
	}

	var result closedOrdersResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ExchangeError{Op: op, Err: fmt.Errorf("malformed result: %w", err)}
	}

	orders := make([]domain.ClosedOrder, 0, len(result.Closed))
	for id, data := range result.Closed {
		order, err := closedOrderFromData(id, data)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// PlaceOrder submits a new order. The expiration is sent as absolute
// epoch seconds computed at call time. Returns nil iff the exchange
// acknowledged with an empty error list.
func (f *Private) PlaceOrder(ctx context.Context, req exchange.PlaceOrderRequest) error {
	const op = "AddOrder"

	marketName, err := marketNameFromPair(req.Pair)
	if err != nil {
		return err
	}
	orderType, err := krakenOrderType(req.OrderType)
	if err != nil {
		return err
	}
	priceOrderType, err := krakenPriceOrderType(req.PriceOrderType)
	if err != nil {
		return err
	}

	params := url.Values{
		"pair":      {marketName},
		"type":      {orderType},
		"ordertype": {priceOrderType},
		"volume":    {req.VolumeInQuote.String()},
	}

	switch req.PriceOrderType {
	case domain.PriceOrderTypeLimit:
		if !req.Price.IsPositive() {
			return &domain.InternalError{
				Err: fmt.Errorf("limit order requires a strictly positive price, got %s", req.Price),
			}
		}
		params.Set("price", req.Price.String())
	case domain.PriceOrderTypeMarket:
		// No price for market orders.
	}

	if req.PreferFeeInQuoteCurrency {
		params.Set("oflags", "fciq")
	}

	if req.ExpirationSecondsFromNow > 0 {
		expiration := epochSeconds(f.now()) + req.ExpirationSecondsFromNow
		params.Set("expiretm", strconv.FormatInt(expiration, 10))
	}

	raw, err := f.client.queryPrivate(ctx, op, params)
	if err != nil {
		return err
	}

	var result addOrderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return &domain.ExchangeError{Op: op, Err: fmt.Errorf("malformed result: %w", err)}
	}

	f.client.logger.Infof("kraken accepted order: %s, txid %v", result.Description.Order, result.TransactionIDs)

	return nil
}
