// Package exchange defines the trading-platform facade contracts and the
// registry that maps a platform name to a constructed facade pair. Facades
// expose the domain model only; venue-specific wire formats never escape
// their implementation package.
package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinharbor/cryptobot/internal/domain"
)

// Precision holds the number of decimal places the venue accepts for a
// market's price and volume.
type Precision struct {
	Price  int32
	Volume int32
}

// PublicFacade exposes market-data operations.
type PublicFacade interface {
	// GetTicker returns the current best ask and bid for the market.
	GetTicker(ctx context.Context, pair domain.CurrencyPair) (*domain.Ticker, error)

	// Precision returns the price and volume precision for the market.
	Precision(pair domain.CurrencyPair) Precision
}

// PlaceOrderRequest carries the parameters of a new order. The volume is
// named "in quote" to stay consistent with the volume configuration
// option; see the CLI help for the known naming discrepancy.
type PlaceOrderRequest struct {
	OrderType                domain.OrderType
	PriceOrderType           domain.PriceOrderType
	Pair                     domain.CurrencyPair
	VolumeInQuote            decimal.Decimal
	Price                    decimal.Decimal
	PreferFeeInQuoteCurrency bool
	ExpirationSecondsFromNow int64
}

// PrivateFacade exposes the authenticated operations.
type PrivateFacade interface {
	// GetAccountBalance returns the balance per supported currency.
	// Balances held in currencies outside the supported set are dropped.
	GetAccountBalance(ctx context.Context) (map[domain.Currency]decimal.Decimal, error)

	// GetOpenOrders returns the currently open orders.
	GetOpenOrders(ctx context.Context, includeTrades bool) ([]domain.OpenOrder, error)

	// GetClosedOrders returns orders closed since from (UTC).
	GetClosedOrders(ctx context.Context, includeTrades bool, from time.Time) ([]domain.ClosedOrder, error)

	// PlaceOrder submits a new order. It returns nil iff the exchange
	// acknowledged the order.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) error
}

// Registry maps a trading-platform name to its facade pair.
type Registry struct {
	public  map[string]PublicFacade
	private map[string]PrivateFacade
}

func NewRegistry() *Registry {
	return &Registry{
		public:  make(map[string]PublicFacade),
		private: make(map[string]PrivateFacade),
	}
}

// Register adds a facade pair under the given platform name.
func (r *Registry) Register(platform string, public PublicFacade, private PrivateFacade) {
	r.public[platform] = public
	r.private[platform] = private
}

// Lookup returns the facade pair registered under the platform name.
func (r *Registry) Lookup(platform string) (PublicFacade, PrivateFacade, error) {
	public, ok := r.public[platform]
	if !ok {
		return nil, nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("no facade registered for trading platform %q", platform),
		}
	}
	return public, r.private[platform], nil
}
