package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository owns every balance mutation. Each method runs as one
// atomic unit against storage: the balance change and its audit record either
// both commit or neither does.
type LedgerRepository interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, details string) error
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, details string) error
	Transfer(ctx context.Context, fromAccountID int64, toAccountID int64, amount decimal.Decimal, debitDetails string, creditDetails string) error
	RecentTransactions(ctx context.Context, accountID int64, limit int) ([]domain.TransactionRecord, error)
}
