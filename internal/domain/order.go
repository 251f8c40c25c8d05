package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents the order side.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// PriceOrderType distinguishes market orders from limit orders.
// A market order carries no price; a limit order must carry a
// strictly positive one.
type PriceOrderType string

const (
	PriceOrderTypeMarket PriceOrderType = "MARKET"
	PriceOrderTypeLimit  PriceOrderType = "LIMIT"
)

// OrderState is the lifecycle state derived from the exchange's reported
// status combined with the number of executed trades.
type OrderState string

const (
	OrderStateNew             OrderState = "NEW"
	OrderStatePartiallyFilled OrderState = "PARTIALLY_FILLED"
	OrderStateFullyFilled     OrderState = "FULLY_FILLED"
	OrderStateCanceled        OrderState = "CANCELED"
	OrderStateExpired         OrderState = "EXPIRED"
	OrderStateUnknown         OrderState = "UNKNOWN"
)

// Ticker is a snapshot of the current best ask and bid for a market.
type Ticker struct {
	MarketName string
	AskPrice   decimal.Decimal
	BidPrice   decimal.Decimal
}

// OpenOrder is an order that is still active on the exchange.
//
// The desired and executed volumes are named "in quote" to stay consistent
// with the volume configuration option; see the CLI help for the known
// naming discrepancy.
type OpenOrder struct {
	ID                    string
	OrderType             OrderType
	PriceOrderType        PriceOrderType
	Pair                  CurrencyPair
	DesiredVolumeInQuote  decimal.Decimal
	ExecutedVolumeInQuote decimal.Decimal
	Price                 decimal.Decimal
	AverageActualPrice    decimal.Decimal
	State                 OrderState
	OpenTime              time.Time
	ExpirationTime        *time.Time
	TradeIDs              []string
}

// ClosedOrder is an order that has reached a terminal state.
type ClosedOrder struct {
	ID                    string
	OrderType             OrderType
	PriceOrderType        PriceOrderType
	Pair                  CurrencyPair
	DesiredVolumeInQuote  decimal.Decimal
	ExecutedVolumeInQuote decimal.Decimal
	Price                 decimal.Decimal
	AverageActualPrice    decimal.Decimal
	State                 OrderState
	OpenTime              time.Time
	CloseTime             time.Time
	ExpirationTime        *time.Time
	StatusCode            string
	TradeIDs              []string
}
