package domain

import "github.com/shopspring/decimal"

// AllocationPlan spreads available funds across pairs once the trigger balance is met.
type AllocationPlan struct {
	Trigger     Trigger
	Allocations []AllocationEntry
	Withdrawals []WithdrawalIntent
}

// Trigger minimum available balance of Symbol required to run the plan.
type Trigger struct {
	Symbol       string
	MinAvailable decimal.Decimal
}

// AllocationEntry spends Percentage of the pair's base currency available balance,
// read right before the order is placed.
type AllocationEntry struct {
	Pair       Pair
	Percentage decimal.Decimal
}

// WithdrawalIntent describes a withdrawal that is reported, never executed, by a plan run.
type WithdrawalIntent struct {
	Symbol        string
	WalletAddress string
	Memo          string
}
