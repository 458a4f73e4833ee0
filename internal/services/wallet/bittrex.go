package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

type BittrexWallet struct {
	client requester
	l      *zap.Logger
}

func NewBittrexWallet(client requester, logger *zap.Logger) *BittrexWallet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BittrexWallet{client: client, l: logger}
}

// GetBalances returns all balances, or the balance of symbol when it is not empty.
// The result is always a slice, even when the exchange answers with a single record.
func (w *BittrexWallet) GetBalances(ctx context.Context, symbol string) ([]domain.Balance, error) {
	path := "/balances"
	if symbol != "" {
		path = fmt.Sprintf("/balances/%s", url.PathEscape(strings.ToUpper(symbol)))
	}

	var raw json.RawMessage
	if err := w.client.Do(ctx, bittrex.MethodGet, path, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to fetch balances")
	}

	return decodeBalances(raw)
}

// Available returns the freshly read available balance of symbol.
// A currency the exchange does not list has zero balance.
func (w *BittrexWallet) Available(ctx context.Context, symbol string) (decimal.Decimal, error) {
	balances, err := w.GetBalances(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}

	for _, b := range balances {
		if strings.EqualFold(b.CurrencySymbol, symbol) {
			w.l.Debug("available balance",
				zap.String("symbol", symbol),
				zap.String("available", b.Available.String()))
			return b.Available, nil
		}
	}

	return decimal.Zero, nil
}

func decodeBalances(raw json.RawMessage) ([]domain.Balance, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Balance{}, nil
	}

	if trimmed[0] == '[' {
		var balances []domain.Balance
		if err := json.Unmarshal(trimmed, &balances); err != nil {
			return nil, errors.Wrap(err, "failed to decode balances")
		}
		return balances, nil
	}

	var single domain.Balance
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, errors.Wrap(err, "failed to decode balance")
	}
	return []domain.Balance{single}, nil
}
