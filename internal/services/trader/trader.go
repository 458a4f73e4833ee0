// Package trader creates, cancels and tracks limit orders.
package trader

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

// closedOrdersPageSize number of closed orders returned by ListOrders.
const closedOrdersPageSize = 10

type requester interface {
	Do(ctx context.Context, method bittrex.Method, path string, body, out any) error
}

// Pricer defines an interface for getting the price of a trading pair.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

// PollState state of an order being waited on.
type PollState string

const (
	PollPolling  PollState = "POLLING"
	PollClosed   PollState = "CLOSED"
	PollTimedOut PollState = "TIMED_OUT"
)

// PollOutcome result of waiting for an order to close.
type PollOutcome struct {
	State    PollState
	Order    domain.Order
	Attempts int
}

// CreateOrderParams describes a new limit order. Exactly one of Quantity
// (in the pair's target currency) and Spend (in its base currency) must be set.
type CreateOrderParams struct {
	Pair      domain.Pair
	Direction domain.Direction
	Quantity  decimal.Decimal
	Spend     decimal.Decimal
	// Limit price override; zero means the current ask rate.
	Limit   decimal.Decimal
	Confirm bool
}

// OrderDraft fully prepared order request.
type OrderDraft struct {
	Request domain.NewOrder
	// Target currency received, Base currency paid.
	Target string
	Base   string
	Spend  decimal.Decimal
}

// OrderResult outcome of CreateOrder. Order is nil unless the order was submitted.
type OrderResult struct {
	Draft OrderDraft
	Order *domain.Order
}
