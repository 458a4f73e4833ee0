package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/trex/internal/domain"
)

var hundred = decimal.NewFromInt(100)

type planTmp struct {
	Trigger struct {
		Symbol       string `yaml:"symbol"`
		MinAvailable string `yaml:"min_available"`
	} `yaml:"trigger"`
	Allocations []struct {
		Pair       string `yaml:"pair"`
		Percentage string `yaml:"percentage"`
	} `yaml:"allocations"`
	Withdrawals []struct {
		Symbol string `yaml:"symbol"`
		Wallet string `yaml:"wallet"`
		Memo   string `yaml:"memo,omitempty"`
	} `yaml:"withdrawals,omitempty"`
}

// LoadPlan reads an allocation plan from a yaml file.
func LoadPlan(path string) (domain.AllocationPlan, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return domain.AllocationPlan{}, &Error{Param: "plan", Err: err}
	}
	return ParsePlan(f)
}

// ParsePlan parses and validates a yaml allocation plan.
func ParsePlan(data []byte) (domain.AllocationPlan, error) {
	var tmp planTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return domain.AllocationPlan{}, planError(err)
	}

	if tmp.Trigger.Symbol == "" {
		return domain.AllocationPlan{}, planError(errors.New("'trigger.symbol' param is required"))
	}
	minAvailable, err := decimal.NewFromString(tmp.Trigger.MinAvailable)
	if err != nil {
		return domain.AllocationPlan{}, planError(fmt.Errorf("incorrect 'trigger.min_available' param in yaml plan (must be a decimal), error: %w", err))
	}
	if minAvailable.IsNegative() {
		return domain.AllocationPlan{}, planError(errors.New("'trigger.min_available' must not be negative"))
	}

	plan := domain.AllocationPlan{
		Trigger: domain.Trigger{Symbol: tmp.Trigger.Symbol, MinAvailable: minAvailable},
	}

	for i, a := range tmp.Allocations {
		pair, err := domain.ParsePair(a.Pair)
		if err != nil {
			return domain.AllocationPlan{}, planError(fmt.Errorf("incorrect 'pair' param in allocation #%d: %w", i+1, err))
		}
		pct, err := decimal.NewFromString(a.Percentage)
		if err != nil {
			return domain.AllocationPlan{}, planError(fmt.Errorf("incorrect 'percentage' param in allocation #%d (must be a decimal), error: %w", i+1, err))
		}
		if !pct.IsPositive() || pct.GreaterThan(hundred) {
			return domain.AllocationPlan{}, planError(fmt.Errorf("'percentage' in allocation #%d must be in (0, 100], got %s", i+1, pct.String()))
		}
		plan.Allocations = append(plan.Allocations, domain.AllocationEntry{Pair: pair, Percentage: pct})
	}

	for i, w := range tmp.Withdrawals {
		if w.Symbol == "" || w.Wallet == "" {
			return domain.AllocationPlan{}, planError(fmt.Errorf("withdrawal #%d requires 'symbol' and 'wallet'", i+1))
		}
		plan.Withdrawals = append(plan.Withdrawals, domain.WithdrawalIntent{
			Symbol:        w.Symbol,
			WalletAddress: w.Wallet,
			Memo:          w.Memo,
		})
	}

	return plan, nil
}

func planError(err error) error {
	return &Error{Param: "plan", Err: fmt.Errorf("%w: %v", ErrInvalidPlan, err)}
}
