package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

type requester interface {
	Do(ctx context.Context, method bittrex.Method, path string, body, out any) error
}

// Pricer returns the rate used to price a new order.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}
