package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType exchange order type. Only LIMIT orders are created by this tool.
type OrderType string

const OrderTypeLimit OrderType = "LIMIT"

// TimeInForce order lifetime policy.
type TimeInForce string

const TimeInForceGTC TimeInForce = "GOOD_TIL_CANCELLED"

// OrderStatus exchange-side order status. CLOSED is terminal.
type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "OPEN"
	OrderStatusClosed OrderStatus = "CLOSED"
)

// Order exchange order as returned by the orders endpoints.
type Order struct {
	ID            string              `json:"id"`
	MarketSymbol  string              `json:"marketSymbol"`
	Direction     Direction           `json:"direction"`
	Type          OrderType           `json:"type"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Limit         decimal.NullDecimal `json:"limit"`
	TimeInForce   TimeInForce         `json:"timeInForce"`
	ClientOrderID string              `json:"clientOrderId,omitempty"`
	FillQuantity  decimal.Decimal     `json:"fillQuantity"`
	Commission    decimal.Decimal     `json:"commission"`
	Proceeds      decimal.Decimal     `json:"proceeds"`
	Status        OrderStatus         `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     *time.Time          `json:"updatedAt,omitempty"`
	// ClosedAt is set only for closed orders.
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}

// IsClosed reports whether the order reached its terminal state.
func (o Order) IsClosed() bool {
	return o.Status == OrderStatusClosed
}

// NewOrder body of a create-order request. Quantities travel as decimal strings.
type NewOrder struct {
	MarketSymbol  string          `json:"marketSymbol"`
	Direction     Direction       `json:"direction"`
	Type          OrderType       `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Limit         decimal.Decimal `json:"limit"`
	TimeInForce   TimeInForce     `json:"timeInForce"`
	ClientOrderID string          `json:"clientOrderId,omitempty"`
	UseAwards     bool            `json:"useAwards"`
}
