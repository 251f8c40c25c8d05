// Package bot holds the trading decisions of a single run: whether a new
// buy order is permissible, at which limit price it is placed, and the
// reporting of open and recently-closed orders.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/exchange"
	"github.com/coinharbor/cryptobot/internal/monitor"
	"github.com/coinharbor/cryptobot/internal/notify"
)

const (
	// orderExpirationSecondsFromNow keeps an unfilled buy order on the
	// book for 14 days before the exchange expires it.
	orderExpirationSecondsFromNow = 14 * 24 * 60 * 60

	// closedOrdersLookback bounds the closed-orders report to the last
	// 3 days.
	closedOrdersLookback = 3 * 24 * time.Hour
)

// Logic composes the trading operations over the registered facade
// pairs and the notification sink.
type Logic struct {
	registry *exchange.Registry
	sink     notify.Sink
	logger   *monitor.Logger
	now      func() time.Time
}

func New(registry *exchange.Registry, sink notify.Sink, logger *monitor.Logger) *Logic {
	return &Logic{
		registry: registry,
		sink:     sink,
		logger:   logger,
		now:      time.Now,
	}
}

// PlaceBuyIfEnoughAvailable places a single limit buy order sized by
// volumeInQuotePerRun, unless the available quote-currency balance is too
// low, in which case it reports the shortfall and succeeds without
// placing anything.
//
// The limit price is the current bid reduced by offsetRatio and rounded
// half-to-even to the market's price precision.
func (l *Logic) PlaceBuyIfEnoughAvailable(
	ctx context.Context,
	platform string,
	volumeInQuotePerRun decimal.Decimal,
	baseCurrencyLabel string,
	quoteCurrencyLabel string,
	offsetRatio decimal.Decimal,
) error {
	if !volumeInQuotePerRun.IsPositive() {
		return &domain.ConfigurationError{
			Reason: fmt.Sprintf("volume to invest per run must be positive, got %s", volumeInQuotePerRun),
		}
	}
	if offsetRatio.IsNegative() || offsetRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return &domain.ConfigurationError{
			Reason: fmt.Sprintf("offset ratio must be in [0, 1), got %s", offsetRatio),
		}
	}

	pair, err := domain.NewCurrencyPair(baseCurrencyLabel, quoteCurrencyLabel)
	if err != nil {
		return err
	}

	public, private, err := l.registry.Lookup(platform)
	if err != nil {
		return err
	}

	balances, err := private.GetAccountBalance(ctx)
	if err != nil {
		return err
	}

	available := balances[pair.Quote]
	if available.LessThan(volumeInQuotePerRun) {
		l.logger.Infof("not enough %s on %s: available %s, needed %s",
			pair.Quote, platform, available, volumeInQuotePerRun)
		return l.sink.Send(ctx, fmt.Sprintf(
			"%s: not enough %s to buy %s: available %s, needed %s",
			platform, pair.Quote, pair.Base, available, volumeInQuotePerRun))
	}

	ticker, err := public.GetTicker(ctx, pair)
	if err != nil {
		return err
	}

	precision := public.Precision(pair)
	limitPrice := ticker.BidPrice.
		Mul(decimal.NewFromInt(1).Sub(offsetRatio)).
		RoundBank(precision.Price)
	volume := volumeInQuotePerRun.Div(limitPrice).RoundDown(precision.Volume)

	err = private.PlaceOrder(ctx, exchange.PlaceOrderRequest{
		OrderType:                domain.OrderTypeBuy,
		PriceOrderType:           domain.PriceOrderTypeLimit,
		Pair:                     pair,
		VolumeInQuote:            volume,
		Price:                    limitPrice,
		PreferFeeInQuoteCurrency: true,
		ExpirationSecondsFromNow: orderExpirationSecondsFromNow,
	})
	if err != nil {
		return err
	}

	l.logger.Infof("placed limit buy order on %s: %s %s at %s", platform, volume, pair, limitPrice)

	return l.sink.Send(ctx, fmt.Sprintf(
		"%s: placed LIMIT BUY of %s %s at limit price %s %s",
		platform, volume, pair, limitPrice, pair.Quote))
}

// ReportOpenOrders sends one notification line per open order, or a
// single "no open orders" notification when there are none.
func (l *Logic) ReportOpenOrders(ctx context.Context, platform string) error {
	_, private, err := l.registry.Lookup(platform)
	if err != nil {
		return err
	}

	orders, err := private.GetOpenOrders(ctx, true)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		return l.sink.Send(ctx, fmt.Sprintf("%s: no open orders", platform))
	}

	for _, order := range orders {
		if err := l.sink.Send(ctx, formatOpenOrder(platform, order)); err != nil {
			return err
		}
	}

	return nil
}

// ReportClosedOrders reports orders closed within the lookback window,
// or a single "no closed orders" notification when there are none.
func (l *Logic) ReportClosedOrders(ctx context.Context, platform string) error {
	_, private, err := l.registry.Lookup(platform)
	if err != nil {
		return err
	}

	from := l.now().UTC().Add(-closedOrdersLookback)
	orders, err := private.GetClosedOrders(ctx, true, from)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		return l.sink.Send(ctx, fmt.Sprintf("%s: no closed orders", platform))
	}

	for _, order := range orders {
		if err := l.sink.Send(ctx, formatClosedOrder(platform, order)); err != nil {
			return err
		}
	}

	return nil
}

func formatOpenOrder(platform string, order domain.OpenOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: open order %s: %s %s %s desired %s executed %s price %s",
		platform, order.ID, order.OrderType, order.PriceOrderType, order.Pair,
		order.DesiredVolumeInQuote, order.ExecutedVolumeInQuote, order.Price)
	if order.ExecutedVolumeInQuote.IsPositive() {
		fmt.Fprintf(&b, " avg %s", order.AverageActualPrice)
	}
	fmt.Fprintf(&b, " state %s opened %s trades %d",
		order.State, order.OpenTime.Format(time.RFC3339), len(order.TradeIDs))
	return b.String()
}

func formatClosedOrder(platform string, order domain.ClosedOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: closed order %s: %s %s %s desired %s executed %s price %s",
		platform, order.ID, order.OrderType, order.PriceOrderType, order.Pair,
		order.DesiredVolumeInQuote, order.ExecutedVolumeInQuote, order.Price)
	if order.ExecutedVolumeInQuote.IsPositive() {
		fmt.Fprintf(&b, " avg %s", order.AverageActualPrice)
	}
	fmt.Fprintf(&b, " state %s opened %s closed %s trades %d",
		order.State, order.OpenTime.Format(time.RFC3339),
		order.CloseTime.Format(time.RFC3339), len(order.TradeIDs))
	return b.String()
}
