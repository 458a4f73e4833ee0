package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/trex/config"
	"github.com/vadiminshakov/trex/internal"
	"github.com/vadiminshakov/trex/internal/domain"
	"github.com/vadiminshakov/trex/internal/services/trader"
	"github.com/vadiminshakov/trex/internal/services/wallet"
)

func runBalances(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("balances", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "currency symbol, all currencies when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	balances, err := ex.Wallet.GetBalances(ctx, *symbol)
	if err != nil {
		return err
	}
	printBalances(wallet.FilterDust(balances))

	return nil
}

func runOrders(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	direction := fs.String("direction", "all", "open, closed or all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	states := []domain.ListState{domain.ListOpen, domain.ListClosed}
	if *direction != "all" {
		state, err := domain.ParseListState(*direction)
		if err != nil {
			return err
		}
		states = []domain.ListState{state}
	}

	for _, state := range states {
		orders, err := ex.Trader.ListOrders(ctx, state)
		if err != nil {
			return err
		}
		printOrders(string(state)+" orders", orders)
	}

	return nil
}

func runOrder(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--id is required")
	}

	order, err := ex.Trader.GetOrder(ctx, *id)
	if err != nil {
		return err
	}
	printOrders("order", []domain.Order{order})

	return nil
}

func runDelete(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("order", "", "id of the order to cancel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--order is required")
	}

	order, err := ex.Trader.DeleteOrder(ctx, *id)
	if err != nil {
		return err
	}
	printOrders("cancelled", []domain.Order{order})

	return nil
}

func runTicker(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("ticker", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "market symbol, e.g. BTC-EUR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pair, err := domain.ParsePair(*symbol)
	if err != nil {
		return err
	}

	ticker, err := ex.Pricer.GetTicker(ctx, pair)
	if err != nil {
		return fatalError{err}
	}
	printTicker(ticker)

	return nil
}

type createFlags struct {
	pair      string
	direction string
	quantity  string
	spend     string
	price     string
	confirm   bool
}

func newCreateFlagSet(f *createFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.StringVar(&f.pair, "pair", "", "market symbol, e.g. BTC-EUR")
	fs.StringVar(&f.direction, "direction", string(domain.DirectionBuy), "BUY or SELL")
	fs.StringVar(&f.quantity, "quantity", "", "order quantity in the target currency")
	fs.StringVar(&f.spend, "spend", "", "amount of the base currency to spend")
	fs.StringVar(&f.price, "price", "", "limit price, current ask rate when empty")
	fs.BoolVar(&f.confirm, "confirm", false, "send the order")
	return fs
}

// params converts parsed flags into order parameters. A zero limit means the ask rate.
func (f createFlags) params() (trader.CreateOrderParams, error) {
	pair, err := domain.ParsePair(f.pair)
	if err != nil {
		return trader.CreateOrderParams{}, err
	}
	direction, err := domain.ParseDirection(f.direction)
	if err != nil {
		return trader.CreateOrderParams{}, err
	}

	params := trader.CreateOrderParams{Pair: pair, Direction: direction, Confirm: f.confirm}
	if params.Quantity, err = optionalDecimal("quantity", f.quantity); err != nil {
		return trader.CreateOrderParams{}, err
	}
	if params.Spend, err = optionalDecimal("spend", f.spend); err != nil {
		return trader.CreateOrderParams{}, err
	}
	if params.Limit, err = optionalDecimal("price", f.price); err != nil {
		return trader.CreateOrderParams{}, err
	}
	return params, nil
}

func runCreate(ctx context.Context, ex *internal.Exchange, args []string) error {
	var f createFlags
	if err := newCreateFlagSet(&f).Parse(args); err != nil {
		return err
	}

	params, err := f.params()
	if err != nil {
		return err
	}
	pair, direction := params.Pair, params.Direction

	if params.Limit.IsZero() {
		// no price, no safe order sizing
		price, err := ex.Pricer.GetPrice(ctx, pair)
		if err != nil {
			return fatalError{err}
		}
		params.Limit = price
	}

	result, err := ex.Trader.CreateOrder(ctx, params)
	if errors.Is(err, domain.ErrMissingConfirmation) && askConfirmation {
		printOrderDraft(result.Draft)
		if !promptConfirm(fmt.Sprintf("Send %s order for %s?", direction, pair)) {
			return err
		}
		params.Confirm = true
		result, err = ex.Trader.CreateOrder(ctx, params)
	}
	if errors.Is(err, domain.ErrMissingConfirmation) {
		printOrderDraft(result.Draft)
		printNotice("dry run: add --confirm to send the order")
		return nil
	}
	if err != nil {
		return err
	}

	printOrderDraft(result.Draft)
	printOrders("created", []domain.Order{*result.Order})

	return nil
}

func runWithdraw(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "currency symbol")
	quantityFlag := fs.String("quantity", "", "amount to withdraw")
	address := fs.String("wallet", "", "destination wallet address")
	tag := fs.String("tag", "", "memo or destination tag")
	confirm := fs.Bool("confirm", false, "send the withdrawal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	quantity, err := optionalDecimal("quantity", *quantityFlag)
	if err != nil {
		return err
	}

	params := wallet.WithdrawParams{
		Symbol:   *symbol,
		Quantity: quantity,
		Address:  *address,
		Tag:      *tag,
		Confirm:  *confirm,
	}

	req, withdrawal, err := ex.Wallet.Withdraw(ctx, params)
	if errors.Is(err, domain.ErrMissingConfirmation) && askConfirmation {
		printWithdrawalRequest(req)
		if !promptConfirm(fmt.Sprintf("Withdraw %s %s?", req.Quantity, req.CurrencySymbol)) {
			return err
		}
		params.Confirm = true
		req, withdrawal, err = ex.Wallet.Withdraw(ctx, params)
	}
	if errors.Is(err, domain.ErrMissingConfirmation) {
		printWithdrawalRequest(req)
		printNotice("dry run: add --confirm to send the withdrawal")
		return nil
	}
	if err != nil {
		return err
	}

	printWithdrawals("withdrawal", []domain.Withdrawal{*withdrawal})

	return nil
}

func runWithdrawals(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("withdrawals", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, state := range []domain.ListState{domain.ListOpen, domain.ListClosed} {
		withdrawals, err := ex.Wallet.ListWithdrawals(ctx, state)
		if err != nil {
			return err
		}
		printWithdrawals(string(state)+" withdrawals", withdrawals)
	}

	return nil
}

func runExecute(ctx context.Context, ex *internal.Exchange, args []string) error {
	fs := flag.NewFlagSet("execute", flag.ContinueOnError)
	planPath := fs.String("plan", "plan.yaml", "allocation plan file")
	confirm := fs.Bool("confirm", false, "send the orders")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plan, err := config.LoadPlan(*planPath)
	if err != nil {
		return err
	}

	if !*confirm && askConfirmation {
		*confirm = promptConfirm(fmt.Sprintf("Place orders for %d allocations?", len(plan.Allocations)))
	}

	report, err := ex.Allocator.Run(ctx, plan, *confirm)
	if err != nil {
		return err
	}
	printReport(report)

	return nil
}

func optionalDecimal(name, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid --%s", name)
	}
	return d, nil
}
