package memory

import (
	"context"
	"sort"

	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultHistoryLimit = 10

type LedgerRepository struct {
	store *Store
}

func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) Deposit(_ context.Context, accountID int64, amount decimal.Decimal, details string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failpoint("deposit"); err != nil {
		return err
	}

	state, ok := s.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}

	state.balance = state.balance.Add(amount)
	s.appendRecord(accountID, domain.TransactionTypeDeposit, amount, details)
	return nil
}

func (r *LedgerRepository) Withdraw(_ context.Context, accountID int64, amount decimal.Decimal, details string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failpoint("withdraw"); err != nil {
		return err
	}

	state, ok := s.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if state.balance.LessThan(amount) {
		return commons.ErrInsufficientBalance
	}

	state.balance = state.balance.Sub(amount)
	s.appendRecord(accountID, domain.TransactionTypeWithdraw, amount, details)
	return nil
}

func (r *LedgerRepository) Transfer(_ context.Context, fromAccountID int64, toAccountID int64, amount decimal.Decimal, debitDetails string, creditDetails string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.accounts[fromAccountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	destination, ok := s.accounts[toAccountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if source.balance.LessThan(amount) {
		return commons.ErrInsufficientBalance
	}

	source.balance = source.balance.Sub(amount)

	// A fault here lands between the two legs; undo the applied debit the
	// way a storage rollback would.
	if err := s.failpoint("transfer.credit"); err != nil {
		source.balance = source.balance.Add(amount)
		return err
	}

	destination.balance = destination.balance.Add(amount)
	s.appendRecord(fromAccountID, domain.TransactionTypeTransfer, amount, debitDetails)
	s.appendRecord(toAccountID, domain.TransactionTypeDeposit, amount, creditDetails)
	return nil
}

func (r *LedgerRepository) RecentTransactions(_ context.Context, accountID int64, limit int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.TransactionRecord, 0)
	for _, record := range s.records {
		if record.AccountID == accountID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
