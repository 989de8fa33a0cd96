package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPosted is emitted after a ledger mutation has committed. It is
// informational only; the transactions table remains the source of truth.
type TransactionPosted struct {
	Reference      string          `json:"reference"`
	Type           string          `json:"type"`
	AccountID      int64           `json:"account_id"`
	CounterpartyID *int64          `json:"counterparty_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
