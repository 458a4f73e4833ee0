// Command trex manages a Bittrex account from the terminal: balances, limit orders,
// withdrawals and allocation plans.
//
// Usage:
//
//	trex [--debug] [--ask] <command> [flags]
//
// Commands:
//
//	balances    [--symbol EUR]
//	orders      [--direction open|closed|all]
//	order       --id ID
//	delete      --order ID
//	ticker      --symbol BTC-EUR
//	create      --pair BTC-EUR --direction BUY (--quantity Q | --spend S) [--price P] [--confirm]
//	withdraw    --symbol XLM --quantity Q --wallet ADDR [--tag MEMO] [--confirm]
//	withdrawals
//	execute     [--plan plan.yaml] [--confirm]
//
// Required environment variables (a .env file in the working directory is also read):
//
//	BITTREX_API_KEY, BITTREX_API_SECRET
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/config"
	"github.com/vadiminshakov/trex/internal"
)

// fatalError stops the process with a non-zero exit code.
type fatalError struct {
	err error
}

func (e fatalError) Error() string { return e.err.Error() }
func (e fatalError) Unwrap() error { return e.err }

type command func(ctx context.Context, ex *internal.Exchange, args []string) error

var commands = map[string]command{
	"balances":    runBalances,
	"orders":      runOrders,
	"order":       runOrder,
	"delete":      runDelete,
	"ticker":      runTicker,
	"create":      runCreate,
	"withdraw":    runWithdraw,
	"withdrawals": runWithdrawals,
	"execute":     runExecute,
}

// askConfirmation enables the interactive prompt before orders or withdrawals are sent.
var askConfirmation bool

func main() {
	debug := flag.Bool("debug", false, "verbose development logging")
	flag.BoolVar(&askConfirmation, "ask", false, "ask before sending orders or withdrawals")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	conf, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	ex, err := internal.New(conf, logger)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, ex, flag.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		printError(err)
		var fatal fatalError
		if errors.As(err, &fatal) {
			_ = logger.Sync()
			stop()
			os.Exit(1)
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	// keep the terminal for command output unless something goes wrong
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: trex [--debug] [--ask] <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands: balances, orders, order, delete, ticker, create, withdraw, withdrawals, execute")
	fmt.Fprintln(os.Stderr, "run 'trex <command> --help' for command flags")
}
