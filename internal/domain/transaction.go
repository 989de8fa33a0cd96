package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// TransactionRecord is an append-only audit entry. Rows are never updated or
// deleted once written, except through the cascading delete of their account.
type TransactionRecord struct {
	ID        int64
	AccountID int64
	Type      TransactionType
	Amount    string
	Details   *string
	CreatedAt time.Time
}
