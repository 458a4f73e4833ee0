package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vadiminshakov/trex/internal/domain"
	"github.com/vadiminshakov/trex/internal/services/allocator"
	"github.com/vadiminshakov/trex/internal/services/trader"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger    = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F5F"}
	warning   = lipgloss.AdaptiveColor{Light: "#C77C02", Dark: "#FFB454"}

	titleStyle  = lipgloss.NewStyle().Foreground(highlight).Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Foreground(special).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(warning)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printTable(title string, t *table.Table) {
	fmt.Println(titleStyle.Render(title))
	fmt.Println(t.Render())
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(errorMessage(err)))
}

func errorMessage(err error) string {
	return "error: " + err.Error()
}

func printNotice(msg string) {
	fmt.Println(noticeStyle.Render(msg))
}

func printBalances(balances []domain.Balance) {
	t := newTable("CURRENCY", "TOTAL", "AVAILABLE")
	for _, b := range balances {
		t.Row(b.CurrencySymbol, b.Total.String(), b.Available.String())
	}
	printTable("balances", t)
}

func printOrders(title string, orders []domain.Order) {
	t := newTable("ID", "MARKET", "DIRECTION", "QUANTITY", "LIMIT", "FILLED", "STATUS", "CREATED")
	for _, o := range orders {
		limit := "-"
		if o.Limit.Valid {
			limit = o.Limit.Decimal.String()
		}
		t.Row(o.ID, o.MarketSymbol, o.Direction.String(), o.Quantity.String(), limit,
			o.FillQuantity.String(), string(o.Status), formatTime(o.CreatedAt))
	}
	printTable(title, t)
}

func printTicker(ticker domain.Ticker) {
	t := newTable("SYMBOL", "LAST", "BID", "ASK", "SPREAD")
	t.Row(ticker.Symbol, ticker.LastTradeRate.String(), ticker.BidRate.String(),
		ticker.AskRate.String(), ticker.Spread().String())
	printTable("ticker", t)
}

func printOrderDraft(draft trader.OrderDraft) {
	req := draft.Request
	t := newTable("MARKET", "DIRECTION", "QUANTITY", "LIMIT", "SPEND", "TIME IN FORCE")
	t.Row(req.MarketSymbol, req.Direction.String(),
		req.Quantity.String()+" "+draft.Target,
		req.Limit.String(),
		draft.Spend.String()+" "+draft.Base,
		string(req.TimeInForce))
	printTable("order request", t)
}

func printWithdrawalRequest(req domain.NewWithdrawal) {
	t := newTable("CURRENCY", "QUANTITY", "ADDRESS", "TAG")
	t.Row(req.CurrencySymbol, req.Quantity.String(), req.CryptoAddress, req.CryptoAddressTag)
	printTable("withdrawal request", t)
}

func printWithdrawals(title string, withdrawals []domain.Withdrawal) {
	t := newTable("ID", "CURRENCY", "QUANTITY", "ADDRESS", "STATUS", "TX", "CREATED")
	for _, w := range withdrawals {
		t.Row(w.ID, w.CurrencySymbol, w.Quantity.String(), w.CryptoAddress,
			w.Status, w.TxID, formatTime(w.CreatedAt))
	}
	printTable(title, t)
}

func printReport(report allocator.Report) {
	t := newTable("PAIR", "PERCENT", "AVAILABLE", "SPEND", "QUANTITY", "LIMIT", "ORDER", "STATE", "ERROR").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 7 && row >= 0 && row < len(report.Entries) {
				return cellStyle.Foreground(entryColor(report.Entries[row].State))
			}
			return cellStyle
		})
	for _, e := range report.Entries {
		errText := ""
		if e.Err != nil {
			errText = e.Err.Error()
		}
		t.Row(e.Pair.String(), e.Percentage.String(), e.Available.String(), e.Spend.String(),
			e.Quantity.String(), e.Limit.String(), e.OrderID, string(e.State), errText)
	}
	printTable("allocations", t)

	if len(report.Withdrawals) > 0 {
		w := newTable("CURRENCY", "AMOUNT", "WALLET", "MEMO")
		for _, r := range report.Withdrawals {
			amount := r.Amount.String()
			if r.Err != nil {
				amount = r.Err.Error()
			}
			w.Row(r.Symbol, amount, r.Wallet, r.Memo)
		}
		printTable("withdrawals (not executed)", w)
	}

	if report.NeedsAttention() {
		fmt.Println(errorStyle.Render("some orders did not close in time and may still be open, check 'trex orders --direction open'"))
	}
}

func entryColor(state allocator.EntryState) lipgloss.TerminalColor {
	switch state {
	case allocator.EntryClosed:
		return special
	case allocator.EntryTimedOut:
		return warning
	case allocator.EntryFailed:
		return danger
	default:
		return subtle
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
