package domain

import "github.com/shopspring/decimal"

const spreadDisplayPlaces = 4

// Ticker current market rates for a pair.
type Ticker struct {
	Symbol        string          `json:"symbol"`
	LastTradeRate decimal.Decimal `json:"lastTradeRate"`
	BidRate       decimal.Decimal `json:"bidRate"`
	AskRate       decimal.Decimal `json:"askRate"`
}

// Spread returns ask minus bid truncated to 4 decimal places.
// The value is for display only and must not be used in pricing.
func (t Ticker) Spread() decimal.Decimal {
	return t.AskRate.Sub(t.BidRate).Truncate(spreadDisplayPlaces)
}
