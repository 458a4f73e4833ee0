package trader

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
	"github.com/vadiminshakov/trex/pkg/poller"
)

type BittrexTrader struct {
	client requester
	pricer Pricer
	poller *poller.Poller
	l      *zap.Logger
	newID  func() string
}

// NewBittrexTrader creates a trader. A nil poller waits up to 60 checks, one second apart.
func NewBittrexTrader(client requester, pricer Pricer, p *poller.Poller, logger *zap.Logger) (*BittrexTrader, error) {
	if client == nil {
		return nil, errors.New("client is required for BittrexTrader")
	}
	if pricer == nil {
		return nil, errors.New("pricer is required for BittrexTrader")
	}
	if p == nil {
		p = poller.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BittrexTrader{
		client: client,
		pricer: pricer,
		poller: p,
		l:      logger,
		newID:  uuid.NewString,
	}, nil
}

// CreateOrder prepares a GOOD_TIL_CANCELLED limit order and submits it when
// params.Confirm is set. Unconfirmed orders are returned as a draft together with
// domain.ErrMissingConfirmation and nothing is sent to the exchange.
func (t *BittrexTrader) CreateOrder(ctx context.Context, params CreateOrderParams) (OrderResult, error) {
	draft, err := t.prepare(ctx, params)
	if err != nil {
		return OrderResult{}, err
	}
	result := OrderResult{Draft: draft}

	t.l.Info("prepared order",
		zap.String("pair", draft.Request.MarketSymbol),
		zap.String("direction", draft.Request.Direction.String()),
		zap.String("quantity", draft.Request.Quantity.String()),
		zap.String("target", draft.Target),
		zap.String("limit", draft.Request.Limit.String()),
		zap.String("spend", draft.Spend.String()),
		zap.String("base", draft.Base),
		zap.Bool("confirm", params.Confirm))

	if !params.Confirm {
		return result, domain.ErrMissingConfirmation
	}

	var order domain.Order
	if err := t.client.Do(ctx, bittrex.MethodPost, "/orders", draft.Request, &order); err != nil {
		return result, errors.Wrapf(err, "failed to create order for %s", draft.Request.MarketSymbol)
	}
	result.Order = &order

	t.l.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.String("fill_quantity", order.FillQuantity.String()),
		zap.String("commission", order.Commission.String()))

	return result, nil
}

func (t *BittrexTrader) prepare(ctx context.Context, params CreateOrderParams) (OrderDraft, error) {
	if !params.Direction.IsValid() {
		return OrderDraft{}, fmt.Errorf("invalid direction %q", params.Direction)
	}

	bySpend := params.Spend.IsPositive()
	byQuantity := params.Quantity.IsPositive()
	if bySpend == byQuantity {
		return OrderDraft{}, errors.New("need exactly one of a positive quantity or spend amount")
	}

	limit := params.Limit
	if limit.IsZero() {
		price, err := t.pricer.GetPrice(ctx, params.Pair)
		if err != nil {
			return OrderDraft{}, errors.Wrap(err, "failed to get price for order")
		}
		limit = price
	}
	if !limit.IsPositive() {
		return OrderDraft{}, fmt.Errorf("limit price must be positive, got %s", limit.String())
	}

	quantity, spend := params.Quantity, params.Spend
	if bySpend {
		quantity = spend.Div(limit)
	} else {
		spend = limit.Mul(quantity)
	}

	target, base := params.Pair.Sides(params.Direction)

	return OrderDraft{
		Request: domain.NewOrder{
			MarketSymbol:  params.Pair.String(),
			Direction:     params.Direction,
			Type:          domain.OrderTypeLimit,
			Quantity:      quantity,
			Limit:         limit,
			TimeInForce:   domain.TimeInForceGTC,
			ClientOrderID: t.newID(),
			UseAwards:     true,
		},
		Target: target,
		Base:   base,
		Spend:  spend,
	}, nil
}

// DeleteOrder cancels an open order.
func (t *BittrexTrader) DeleteOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	if err := t.client.Do(ctx, bittrex.MethodDelete, orderPath(id), nil, &order); err != nil {
		return domain.Order{}, errors.Wrapf(err, "failed to delete order %s", id)
	}

	t.l.Info("order deleted", zap.String("order_id", id), zap.String("status", string(order.Status)))

	return order, nil
}

// GetOrder fetches a single order.
func (t *BittrexTrader) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	if err := t.client.Do(ctx, bittrex.MethodGet, orderPath(id), nil, &order); err != nil {
		return domain.Order{}, errors.Wrapf(err, "failed to fetch order %s", id)
	}
	return order, nil
}

// ListOrders returns open orders, or the most recent closed ones.
func (t *BittrexTrader) ListOrders(ctx context.Context, state domain.ListState) ([]domain.Order, error) {
	path := "/orders/open"
	if state == domain.ListClosed {
		path = fmt.Sprintf("/orders/closed?pageSize=%d", closedOrdersPageSize)
	}

	var orders []domain.Order
	if err := t.client.Do(ctx, bittrex.MethodGet, path, nil, &orders); err != nil {
		return nil, errors.Wrapf(err, "failed to list %s orders", state)
	}
	return orders, nil
}

// PollUntilClosed checks the order until it is CLOSED or the poller runs out of
// attempts. Running out returns a TIMED_OUT outcome with domain.ErrPollTimeout;
// the order may still be open on the exchange. A failed check stops polling.
func (t *BittrexTrader) PollUntilClosed(ctx context.Context, id string) (PollOutcome, error) {
	order, attempts, err := poller.PollWithData(t.poller, ctx, func(ctx context.Context) (domain.Order, bool, error) {
		o, err := t.GetOrder(ctx, id)
		if err != nil {
			return domain.Order{}, false, err
		}
		t.l.Debug("order status", zap.String("order_id", id), zap.String("status", string(o.Status)))
		return o, o.IsClosed(), nil
	})

	outcome := PollOutcome{State: PollPolling, Order: order, Attempts: attempts}

	switch {
	case err == nil:
		outcome.State = PollClosed
		t.l.Info("order closed",
			zap.String("order_id", id),
			zap.String("fill_quantity", order.FillQuantity.String()),
			zap.Int("attempts", attempts))
		return outcome, nil
	case errors.Is(err, poller.ErrExhausted):
		outcome.State = PollTimedOut
		t.l.Warn("order still not closed, giving up",
			zap.String("order_id", id),
			zap.Int("attempts", attempts),
			zap.Duration("interval", t.poller.Interval()))
		return outcome, domain.ErrPollTimeout
	default:
		return outcome, errors.Wrapf(err, "polling order %s", id)
	}
}

func orderPath(id string) string {
	return "/orders/" + url.PathEscape(id)
}
