package memory

import (
	"sync"
	"time"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Store is an in-memory stand-in for the relational store. A single mutex
// serializes every mutating operation, so each repository call is atomic the
// same way a committed storage transaction is.
type Store struct {
	mu             sync.Mutex
	nextCustomerID int64
	nextAccountID  int64
	nextRecordID   int64
	customers      map[int64]domain.Customer
	accounts       map[int64]*accountState
	records        []domain.TransactionRecord
	failpoints     map[string]error
}

type accountState struct {
	account domain.Account
	balance decimal.Decimal
}

func New() *Store {
	return &Store{
		customers:  make(map[int64]domain.Customer),
		accounts:   make(map[int64]*accountState),
		failpoints: make(map[string]error),
	}
}

// FailOnce arms a failpoint. The next repository call that reaches the named
// point returns the given error instead of completing, then the failpoint is
// cleared. Used to simulate storage faults mid-transaction.
func (s *Store) FailOnce(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failpoints[name] = err
}

// failpoint must be called with s.mu held.
func (s *Store) failpoint(name string) error {
	if err, ok := s.failpoints[name]; ok {
		delete(s.failpoints, name)
		return err
	}
	return nil
}

// appendRecord must be called with s.mu held.
func (s *Store) appendRecord(accountID int64, txType domain.TransactionType, amount decimal.Decimal, details string) {
	s.nextRecordID++
	value := details
	s.records = append(s.records, domain.TransactionRecord{
		ID:        s.nextRecordID,
		AccountID: accountID,
		Type:      txType,
		Amount:    amount.StringFixed(2),
		Details:   &value,
		CreatedAt: time.Now(),
	})
}

// snapshot renders a value copy so callers cannot reach internal state.
// Call with the store mutex held.
func (st *accountState) snapshot() domain.Account {
	account := st.account
	account.Balance = st.balance.StringFixed(2)
	return account
}
