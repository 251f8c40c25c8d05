package kraken

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinharbor/cryptobot/internal/domain"
)

// krakenCurrencyCodes maps each supported currency to its Kraken asset
// code, as used in balances and the long market-name form.
var krakenCurrencyCodes = map[domain.Currency]string{
	domain.BTC: "XXBT",
	domain.ETH: "XETH",
	domain.LTC: "XLTC",
	domain.XRP: "XXRP",
	domain.EUR: "ZEUR",
	domain.USD: "ZUSD",
}

var currenciesByKrakenCode = func() map[string]domain.Currency {
	m := make(map[string]domain.Currency, len(krakenCurrencyCodes))
	for currency, code := range krakenCurrencyCodes {
		m[code] = currency
	}
	return m
}()

// altName returns the short asset code used in the market-name form
// requests are made with, e.g. XBT in XBTEUR.
func altName(currency domain.Currency) string {
	if currency == domain.BTC {
		return "XBT"
	}
	return string(currency)
}

// pairsByMarketName accepts both the short form sent in requests
// (XBTEUR) and the long form Kraken answers with (XXBTZEUR).
var pairsByMarketName = func() map[string]domain.CurrencyPair {
	m := make(map[string]domain.CurrencyPair)
	for _, base := range domain.Currencies {
		for _, quote := range domain.Currencies {
			if base == quote {
				continue
			}
			pair := domain.CurrencyPair{Base: base, Quote: quote}
			m[altName(base)+altName(quote)] = pair
			m[krakenCurrencyCodes[base]+krakenCurrencyCodes[quote]] = pair
		}
	}
	return m
}()

func currencyFromKraken(code string) (domain.Currency, error) {
	currency, ok := currenciesByKrakenCode[code]
	if !ok {
		return "", &domain.ConversionError{What: "kraken currency code", Value: code}
	}
	return currency, nil
}

func krakenCurrencyCode(currency domain.Currency) (string, error) {
	code, ok := krakenCurrencyCodes[currency]
	if !ok {
		return "", &domain.ConversionError{What: "currency", Value: string(currency)}
	}
	return code, nil
}

func marketNameFromPair(pair domain.CurrencyPair) (string, error) {
	if _, ok := krakenCurrencyCodes[pair.Base]; !ok {
		return "", &domain.ConversionError{What: "currency", Value: string(pair.Base)}
	}
	if _, ok := krakenCurrencyCodes[pair.Quote]; !ok {
		return "", &domain.ConversionError{What: "currency", Value: string(pair.Quote)}
	}
	return altName(pair.Base) + altName(pair.Quote), nil
}

func pairFromMarketName(name string) (domain.CurrencyPair, error) {
	pair, ok := pairsByMarketName[name]
	if !ok {
		return domain.CurrencyPair{}, &domain.ConversionError{What: "kraken market name", Value: name}
	}
	return pair, nil
}

func orderTypeFromKraken(token string) (domain.OrderType, error) {
	switch token {
	case "buy":
		return domain.OrderTypeBuy, nil
	case "sell":
		return domain.OrderTypeSell, nil
	default:
		return "", &domain.ConversionError{What: "kraken order type", Value: token}
	}
}

func krakenOrderType(orderType domain.OrderType) (string, error) {
	switch orderType {
	case domain.OrderTypeBuy:
		return "buy", nil
	case domain.OrderTypeSell:
		return "sell", nil
	default:
		return "", &domain.ConversionError{What: "order type", Value: string(orderType)}
	}
}

func priceOrderTypeFromKraken(token string) (domain.PriceOrderType, error) {
	switch token {
	case "market":
		return domain.PriceOrderTypeMarket, nil
	case "limit":
		return domain.PriceOrderTypeLimit, nil
	default:
		return "", &domain.ConversionError{What: "kraken price order type", Value: token}
	}
}

func krakenPriceOrderType(priceOrderType domain.PriceOrderType) (string, error) {
	switch priceOrderType {
	case domain.PriceOrderTypeMarket:
		return "market", nil
	case domain.PriceOrderTypeLimit:
		return "limit", nil
	default:
		return "", &domain.ConversionError{What: "price order type", Value: string(priceOrderType)}
	}
}

// orderStateFrom derives the order state from the reported status and the
// number of executed trades. A canceled or expired order with trades is
// reported as partially filled: the partial fill is preserved at the cost
// of the terminal cancellation/expiry signal.
func orderStateFrom(status string, tradeCount int) domain.OrderState {
	switch status {
	case "pending", "open":
		if tradeCount == 0 {
			return domain.OrderStateNew
		}
		return domain.OrderStatePartiallyFilled
	case "closed":
		if tradeCount >= 1 {
			return domain.OrderStateFullyFilled
		}
		return domain.OrderStateUnknown
	case "canceled":
		if tradeCount == 0 {
			return domain.OrderStateCanceled
		}
		return domain.OrderStatePartiallyFilled
	case "expired":
		if tradeCount == 0 {
			return domain.OrderStateExpired
		}
		return domain.OrderStatePartiallyFilled
	default:
		return domain.OrderStateUnknown
	}
}

// timeFromEpochSeconds converts fractional epoch seconds to a UTC
// time.Time, truncating the sub-second part.
func timeFromEpochSeconds(value json.Number) (time.Time, error) {
	seconds, err := decimal.NewFromString(value.String())
	if err != nil {
		return time.Time{}, &domain.ConversionError{What: "epoch seconds", Value: value.String()}
	}
	return time.Unix(seconds.IntPart(), 0).UTC(), nil
}

// optionalTimeFromEpochSeconds treats an absent or zero timestamp as "no
// value", which is how the exchange reports orders without expiration.
func optionalTimeFromEpochSeconds(value json.Number) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	seconds, err := decimal.NewFromString(value.String())
	if err != nil {
		return nil, &domain.ConversionError{What: "epoch seconds", Value: value.String()}
	}
	if seconds.IsZero() {
		return nil, nil
	}
	t := time.Unix(seconds.IntPart(), 0).UTC()
	return &t, nil
}

// epochSeconds converts a UTC instant to whole epoch seconds.
func epochSeconds(t time.Time) int64 {
	return t.UTC().Unix()
}

func parseDecimal(value, what string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, &domain.ConversionError{What: what, Value: value}
	}
	return parsed, nil
}

// orderFields is the part shared by open and closed orders.
type orderFields struct {
	orderType      domain.OrderType
	priceOrderType domain.PriceOrderType
	pair           domain.CurrencyPair
	desiredVolume  decimal.Decimal
	executedVolume decimal.Decimal
	price          decimal.Decimal
	averagePrice   decimal.Decimal
	state          domain.OrderState
	openTime       time.Time
	expirationTime *time.Time
}

func orderFieldsFromData(data orderData) (orderFields, error) {
	var fields orderFields
	var err error

	if fields.orderType, err = orderTypeFromKraken(data.Description.Type); err != nil {
		return fields, err
	}
	if fields.priceOrderType, err = priceOrderTypeFromKraken(data.Description.OrderType); err != nil {
		return fields, err
	}
	if fields.pair, err = pairFromMarketName(data.Description.Pair); err != nil {
		return fields, err
	}
	if fields.desiredVolume, err = parseDecimal(data.Volume, "order volume"); err != nil {
		return fields, err
	}
	if fields.executedVolume, err = parseDecimal(data.ExecutedVolume, "executed volume"); err != nil {
		return fields, err
	}
	if fields.price, err = parseDecimal(data.Description.Price, "order price"); err != nil {
		return fields, err
	}
	if fields.averagePrice, err = parseDecimal(data.AveragePrice, "average price"); err != nil {
		return fields, err
	}
	if fields.openTime, err = timeFromEpochSeconds(data.OpenTime); err != nil {
		return fields, err
	}
	if fields.expirationTime, err = optionalTimeFromEpochSeconds(data.ExpireTime); err != nil {
		return fields, err
	}
	fields.state = orderStateFrom(data.Status, len(data.Trades))

	return fields, nil
}

func openOrderFromData(id string, data orderData) (domain.OpenOrder, error) {
	fields, err := orderFieldsFromData(data)
	if err != nil {
		return domain.OpenOrder{}, err
	}

	return domain.OpenOrder{
		ID:                    id,
		OrderType:             fields.orderType,
		PriceOrderType:        fields.priceOrderType,
		Pair:                  fields.pair,
		DesiredVolumeInQuote:  fields.desiredVolume,
		ExecutedVolumeInQuote: fields.executedVolume,
		Price:                 fields.price,
		AverageActualPrice:    fields.averagePrice,
		State:                 fields.state,
		OpenTime:              fields.openTime,
		ExpirationTime:        fields.expirationTime,
		TradeIDs:              data.Trades,
	}, nil
}

func closedOrderFromData(id string, data orderData) (domain.ClosedOrder, error) {
	fields, err := orderFieldsFromData(data)
	if err != nil {
		return domain.ClosedOrder{}, err
	}

	closeTime, err := timeFromEpochSeconds(data.CloseTime)
	if err != nil {
		return domain.ClosedOrder{}, err
	}

	return domain.ClosedOrder{
		ID:                    id,
		OrderType:             fields.orderType,
		PriceOrderType:        fields.priceOrderType,
		Pair:                  fields.pair,
		DesiredVolumeInQuote:  fields.desiredVolume,
		ExecutedVolumeInQuote: fields.executedVolume,
		Price:                 fields.price,
		AverageActualPrice:    fields.averagePrice,
		State:                 fields.state,
		OpenTime:              fields.openTime,
		CloseTime:             closeTime,
		ExpirationTime:        fields.expirationTime,
		StatusCode:            data.Status,
		TradeIDs:              data.Trades,
	}, nil
}
