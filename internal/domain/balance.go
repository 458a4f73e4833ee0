package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance account balance snapshot for one currency.
type Balance struct {
	CurrencySymbol string          `json:"currencySymbol"`
	Total          decimal.Decimal `json:"total"`
	Available      decimal.Decimal `json:"available"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
