// Package wallet reads account balances and manages withdrawals.
package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

// DustThreshold balances with a total at or below this amount are not reported.
var DustThreshold = decimal.RequireFromString("0.0005")

type requester interface {
	Do(ctx context.Context, method bittrex.Method, path string, body, out any) error
}

// FilterDust drops balances whose total does not exceed DustThreshold.
func FilterDust(balances []domain.Balance) []domain.Balance {
	out := make([]domain.Balance, 0, len(balances))
	for _, b := range balances {
		if b.Total.GreaterThan(DustThreshold) {
			out = append(out, b)
		}
	}
	return out
}
