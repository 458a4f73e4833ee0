package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTicker_Spread(t *testing.T) {
	ticker := Ticker{
		Symbol:  "ADA-EUR",
		BidRate: decimal.RequireFromString("1.123456"),
		AskRate: decimal.RequireFromString("1.129999"),
	}

	// 0.006543 truncated, not rounded
	assert.Equal(t, "0.0065", ticker.Spread().String())
	// the rates themselves stay exact
	assert.Equal(t, "1.129999", ticker.AskRate.String())
}

func TestInsufficientFundsError(t *testing.T) {
	err := &InsufficientFundsError{
		Symbol:    "EUR",
		Available: decimal.NewFromInt(50),
		Required:  decimal.NewFromInt(100),
	}
	assert.Equal(t, "insufficient EUR funds: available 50, required 100", err.Error())
}
