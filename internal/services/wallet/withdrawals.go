package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

// WithdrawParams describes a withdrawal to an external wallet.
type WithdrawParams struct {
	Symbol   string
	Quantity decimal.Decimal
	Address  string
	// Tag memo or destination tag, when the network requires one.
	Tag     string
	Confirm bool
}

// Withdraw prepares a withdrawal and sends it when params.Confirm is set.
// Without confirmation the prepared request is returned with domain.ErrMissingConfirmation.
func (w *BittrexWallet) Withdraw(ctx context.Context, params WithdrawParams) (domain.NewWithdrawal, *domain.Withdrawal, error) {
	if params.Symbol == "" || params.Address == "" {
		return domain.NewWithdrawal{}, nil, errors.New("withdrawal requires symbol and wallet address")
	}
	if !params.Quantity.IsPositive() {
		return domain.NewWithdrawal{}, nil, fmt.Errorf("withdrawal quantity must be positive, got %s", params.Quantity.String())
	}

	req := domain.NewWithdrawal{
		CurrencySymbol:   strings.ToUpper(params.Symbol),
		Quantity:         params.Quantity,
		CryptoAddress:    params.Address,
		CryptoAddressTag: params.Tag,
	}

	if !params.Confirm {
		return req, nil, domain.ErrMissingConfirmation
	}

	var withdrawal domain.Withdrawal
	if err := w.client.Do(ctx, bittrex.MethodPost, "/withdrawals", req, &withdrawal); err != nil {
		return req, nil, errors.Wrapf(err, "failed to withdraw %s %s", req.Quantity.String(), req.CurrencySymbol)
	}

	w.l.Info("withdrawal created",
		zap.String("id", withdrawal.ID),
		zap.String("symbol", withdrawal.CurrencySymbol),
		zap.String("quantity", withdrawal.Quantity.String()),
		zap.String("status", withdrawal.Status))

	return req, &withdrawal, nil
}

// ListWithdrawals returns open or closed withdrawals.
func (w *BittrexWallet) ListWithdrawals(ctx context.Context, state domain.ListState) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	if err := w.client.Do(ctx, bittrex.MethodGet, "/withdrawals/"+string(state), nil, &withdrawals); err != nil {
		return nil, errors.Wrapf(err, "failed to list %s withdrawals", state)
	}
	return withdrawals, nil
}
