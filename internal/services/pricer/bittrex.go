package pricer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

// BittrexPricer reads market tickers. It never retries: without a price no order
// can be sized, so callers are expected to stop on error.
type BittrexPricer struct {
	client requester
	l      *zap.Logger
}

var _ Pricer = (*BittrexPricer)(nil)

func NewBittrexPricer(client requester, logger *zap.Logger) *BittrexPricer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BittrexPricer{client: client, l: logger}
}

// GetTicker fetches the current ticker of the pair.
func (p *BittrexPricer) GetTicker(ctx context.Context, pair domain.Pair) (domain.Ticker, error) {
	var ticker domain.Ticker
	path := fmt.Sprintf("/markets/%s/ticker", url.PathEscape(pair.String()))
	if err := p.client.Do(ctx, bittrex.MethodGet, path, nil, &ticker); err != nil {
		return domain.Ticker{}, errors.Wrapf(err, "failed to fetch ticker for %s", pair.String())
	}

	p.l.Debug("ticker",
		zap.String("pair", pair.String()),
		zap.String("ask", ticker.AskRate.String()),
		zap.String("bid", ticker.BidRate.String()))

	return ticker, nil
}

// GetPrice returns the current ask rate of the pair.
func (p *BittrexPricer) GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	ticker, err := p.GetTicker(ctx, pair)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !ticker.AskRate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("bittrex returned non-positive ask rate %s for %s", ticker.AskRate.String(), pair.String())
	}

	return ticker.AskRate, nil
}
