// Package allocator deploys available funds across trading pairs following an allocation plan.
//
// Entries run strictly one after another: each one reads the base currency balance
// right before placing its order and waits for that order to close before the next
// entry starts. The balance read and the order placement are not atomic, so funds
// moved by someone else in between (manual trading, another process) change the
// computed spend. The exchange offers no way to lock a balance.
package allocator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/internal/domain"
	"github.com/vadiminshakov/trex/internal/services/trader"
	"github.com/vadiminshakov/trex/internal/services/wallet"
)

var hundred = decimal.NewFromInt(100)

type balances interface {
	Available(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type orders interface {
	CreateOrder(ctx context.Context, params trader.CreateOrderParams) (trader.OrderResult, error)
	PollUntilClosed(ctx context.Context, id string) (trader.PollOutcome, error)
}

// EntryState final state of a single allocation entry.
type EntryState string

const (
	// EntryPrepared order was prepared but not sent (dry run).
	EntryPrepared EntryState = "PREPARED"
	// EntryFailed the entry could not be priced or submitted, or polling failed.
	EntryFailed EntryState = "FAILED"
	// EntryClosed the order was filled and closed.
	EntryClosed EntryState = "CLOSED"
	// EntryTimedOut the order did not close in time and may still be open.
	EntryTimedOut EntryState = "TIMED_OUT"
)

// EntryOutcome result of one allocation entry.
type EntryOutcome struct {
	Pair       domain.Pair
	Percentage decimal.Decimal
	Available  decimal.Decimal
	Spend      decimal.Decimal
	Quantity   decimal.Decimal
	Limit      decimal.Decimal
	OrderID    string
	State      EntryState
	Err        error
}

// WithdrawalReport withdrawal that would be made with the current balance. It is never executed.
type WithdrawalReport struct {
	Symbol string
	Amount decimal.Decimal
	Wallet string
	Memo   string
	Err    error
}

// Report result of a plan run, entries in plan order.
type Report struct {
	Entries     []EntryOutcome
	Withdrawals []WithdrawalReport
}

// NeedsAttention reports whether any entry left an order that may still be open.
func (r Report) NeedsAttention() bool {
	for _, e := range r.Entries {
		if e.State == EntryTimedOut {
			return true
		}
	}
	return false
}

type Allocator struct {
	balances balances
	trader orders
	l      *zap.Logger
}

func NewAllocator(b balances, trader orders, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{balances: b, trader: trader, l: logger}
}

// Run executes the plan. When the trigger balance is below its minimum a
// *domain.InsufficientFundsError is returned and no order is placed. A failing entry
// is recorded in the report and does not stop the following ones.
func (a *Allocator) Run(ctx context.Context, plan domain.AllocationPlan, confirm bool) (Report, error) {
	available, err := a.balances.Available(ctx, plan.Trigger.Symbol)
	if err != nil {
		return Report{}, errors.Wrapf(err, "failed to read trigger balance %s", plan.Trigger.Symbol)
	}
	if available.LessThan(plan.Trigger.MinAvailable) {
		return Report{}, &domain.InsufficientFundsError{
			Symbol:    plan.Trigger.Symbol,
			Available: available,
			Required:  plan.Trigger.MinAvailable,
		}
	}

	a.l.Info("allocation triggered",
		zap.String("symbol", plan.Trigger.Symbol),
		zap.String("available", available.String()),
		zap.String("min_available", plan.Trigger.MinAvailable.String()),
		zap.Int("allocations", len(plan.Allocations)),
		zap.Bool("confirm", confirm))

	report := Report{
		Entries:     make([]EntryOutcome, 0, len(plan.Allocations)),
		Withdrawals: make([]WithdrawalReport, 0, len(plan.Withdrawals)),
	}

	for _, entry := range plan.Allocations {
		outcome := a.allocate(ctx, entry, confirm)
		if outcome.Err != nil && outcome.State == EntryFailed {
			a.l.Error("allocation entry failed", zap.String("pair", entry.Pair.String()), zap.Error(outcome.Err))
		}
		report.Entries = append(report.Entries, outcome)
	}

	for _, w := range plan.Withdrawals {
		report.Withdrawals = append(report.Withdrawals, a.reportWithdrawal(ctx, w))
	}

	return report, nil
}

func (a *Allocator) allocate(ctx context.Context, entry domain.AllocationEntry, confirm bool) EntryOutcome {
	outcome := EntryOutcome{Pair: entry.Pair, Percentage: entry.Percentage, State: EntryFailed}

	_, base := entry.Pair.Sides(domain.DirectionBuy)
	available, err := a.balances.Available(ctx, base)
	if err != nil {
		outcome.Err = errors.Wrapf(err, "failed to read %s balance", base)
		return outcome
	}
	outcome.Available = available

	// same cut as wallet.FilterDust
	if available.LessThanOrEqual(wallet.DustThreshold) {
		outcome.Err = errors.Errorf("nothing to spend: %s available balance %s is dust", base, available.String())
		return outcome
	}
	outcome.Spend = available.Mul(entry.Percentage).Div(hundred)

	result, err := a.trader.CreateOrder(ctx, trader.CreateOrderParams{
		Pair:      entry.Pair,
		Direction: domain.DirectionBuy,
		Spend:     outcome.Spend,
		Confirm:   confirm,
	})
	outcome.Quantity = result.Draft.Request.Quantity
	outcome.Limit = result.Draft.Request.Limit
	if errors.Is(err, domain.ErrMissingConfirmation) {
		outcome.State = EntryPrepared
		outcome.Err = err
		return outcome
	}
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.OrderID = result.Order.ID

	poll, err := a.trader.PollUntilClosed(ctx, result.Order.ID)
	switch {
	case err == nil:
		outcome.State = EntryClosed
	case errors.Is(err, domain.ErrPollTimeout):
		outcome.State = EntryTimedOut
		outcome.Err = err
		a.l.Warn("order left open, continuing with next allocation",
			zap.String("pair", entry.Pair.String()),
			zap.String("order_id", result.Order.ID),
			zap.Int("attempts", poll.Attempts))
	default:
		outcome.Err = err
	}

	return outcome
}

func (a *Allocator) reportWithdrawal(ctx context.Context, w domain.WithdrawalIntent) WithdrawalReport {
	report := WithdrawalReport{Symbol: w.Symbol, Wallet: w.WalletAddress, Memo: w.Memo}

	amount, err := a.balances.Available(ctx, w.Symbol)
	if err != nil {
		report.Err = errors.Wrapf(err, "failed to read %s balance", w.Symbol)
		return report
	}
	report.Amount = amount

	a.l.Info("withdrawal intent (not executed)",
		zap.String("symbol", w.Symbol),
		zap.String("amount", amount.String()),
		zap.String("wallet", w.WalletAddress))

	return report
}
