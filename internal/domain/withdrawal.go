package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal exchange withdrawal record.
type Withdrawal struct {
	ID               string          `json:"id"`
	CurrencySymbol   string          `json:"currencySymbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	CryptoAddress    string          `json:"cryptoAddress"`
	CryptoAddressTag string          `json:"cryptoAddressTag,omitempty"`
	TxCost           decimal.Decimal `json:"txCost"`
	TxID             string          `json:"txId,omitempty"`
	Status           string          `json:"status"`
	Target           string          `json:"target,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	// CompletedAt is set only for completed withdrawals.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewWithdrawal body of a create-withdrawal request.
type NewWithdrawal struct {
	CurrencySymbol   string          `json:"currencySymbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	CryptoAddress    string          `json:"cryptoAddress"`
	CryptoAddressTag string          `json:"cryptoAddressTag,omitempty"`
}
