package domain

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingConfirmation is returned when a prepared order or withdrawal
	// was not confirmed and therefore not sent.
	ErrMissingConfirmation = errors.New("no action taken, confirmation required")
	// ErrPollTimeout is returned when an order did not close within the polling window.
	ErrPollTimeout = errors.New("order did not close within polling window")
)

// InsufficientFundsError available balance is below the required minimum.
type InsufficientFundsError struct {
	Symbol    string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s funds: available %s, required %s",
		e.Symbol, e.Available.String(), e.Required.String())
}
