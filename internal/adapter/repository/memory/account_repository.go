package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failpoint("account.create"); err != nil {
		return domain.Account{}, err
	}

	// Referential integrity, as the FK constraint would enforce it.
	if _, ok := s.customers[account.CustomerID]; !ok {
		return domain.Account{}, fmt.Errorf("customer %d does not exist: %w", account.CustomerID, commons.ErrRecordNotFound)
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse initial balance: %w", err)
	}

	s.nextAccountID++
	account.ID = s.nextAccountID
	account.CreatedAt = time.Now()

	state := &accountState{account: account, balance: balance}
	s.accounts[account.ID] = state
	return state.snapshot(), nil
}

func (r *AccountRepository) Get(_ context.Context, accountID int64) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.accounts[accountID]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return state.snapshot(), nil
}

func (r *AccountRepository) ListByCustomer(_ context.Context, customerID int64) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, state := range s.accounts {
		if state.account.CustomerID == customerID {
			accounts = append(accounts, state.snapshot())
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
