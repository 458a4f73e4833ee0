package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/trex/config"
	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/services/allocator"
	"github.com/vadiminshakov/trex/internal/services/pricer"
	"github.com/vadiminshakov/trex/internal/services/trader"
	"github.com/vadiminshakov/trex/internal/services/wallet"
	"github.com/vadiminshakov/trex/pkg/poller"
)

// Exchange bundles the services sharing one signed client.
type Exchange struct {
	Pricer    *pricer.BittrexPricer
	Wallet    *wallet.BittrexWallet
	Trader    *trader.BittrexTrader
	Allocator *allocator.Allocator
	Config    config.Config
}

// New creates the exchange services from conf.
func New(conf config.Config, logger *zap.Logger) (*Exchange, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := bittrex.NewClient(conf.Credentials.APIKey, conf.Credentials.APISecret,
		bittrex.WithBaseURL(conf.BaseURL),
		bittrex.WithTimeout(conf.HTTPTimeout),
		bittrex.WithLogger(logger.Named("bittrex")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bittrex client")
	}

	currentPricer := pricer.NewBittrexPricer(client, logger.Named("pricer"))
	currentWallet := wallet.NewBittrexWallet(client, logger.Named("wallet"))

	p := poller.New(poller.WithInterval(conf.PollInterval), poller.WithMaxAttempts(conf.PollAttempts))
	currentTrader, err := trader.NewBittrexTrader(client, currentPricer, p, logger.Named("trader"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trader")
	}

	return &Exchange{
		Pricer:    currentPricer,
		Wallet:    currentWallet,
		Trader:    currentTrader,
		Allocator: allocator.NewAllocator(currentWallet, currentTrader, logger.Named("allocator")),
		Config:    conf,
	}, nil
}
