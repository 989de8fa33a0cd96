package services_test

import (
	"context"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/memory"
	"github.com/corebank/ledger-service/internal/events"
	"github.com/corebank/ledger-service/internal/usecase/services"
)

type fixture struct {
	store     *memory.Store
	customers *services.CustomerService
	accounts  *services.AccountService
	ledger    *services.LedgerService
	published *capturePublisher
}

type capturePublisher struct {
	events []events.TransactionPosted
}

func (p *capturePublisher) Publish(_ string, event any) error {
	if posted, ok := event.(events.TransactionPosted); ok {
		p.events = append(p.events, posted)
	}
	return nil
}

func newFixture() *fixture {
	store := memory.New()
	customerRepo := memory.NewCustomerRepository(store)
	accountRepo := memory.NewAccountRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	published := &capturePublisher{}

	return &fixture{
		store:     store,
		customers: services.NewCustomerService(customerRepo),
		accounts:  services.NewAccountService(accountRepo, customerRepo),
		ledger:    services.NewLedgerService(ledgerRepo, accountRepo, published, nil, "ledger_transactions"),
		published: published,
	}
}

func (f *fixture) newCustomer(t *testing.T, name string) int64 {
	t.Helper()
	resp, err := f.customers.CreateCustomer(context.Background(), models.CreateCustomerRequest{Name: name})
	if err != nil {
		t.Fatalf("create customer %q: %v", name, err)
	}
	return resp.Data.ID
}

func (f *fixture) newAccount(t *testing.T, customerID int64, accountType string) int64 {
	t.Helper()
	resp, err := f.accounts.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:  customerID,
		AccountType: accountType,
	})
	if err != nil {
		t.Fatalf("create account for customer %d: %v", customerID, err)
	}
	return resp.Data.ID
}

func (f *fixture) deposit(t *testing.T, accountID int64, amount string) {
	t.Helper()
	if _, err := f.ledger.Deposit(context.Background(), models.DepositRequest{
		AccountID: accountID,
		Amount:    amount,
	}); err != nil {
		t.Fatalf("deposit %s into account %d: %v", amount, accountID, err)
	}
}

func (f *fixture) balance(t *testing.T, accountID int64) string {
	t.Helper()
	resp, err := f.accounts.GetAccount(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get account %d: %v", accountID, err)
	}
	return resp.Data.Balance
}

func (f *fixture) history(t *testing.T, accountID int64, limit int) []models.TransactionResponse {
	t.Helper()
	resp, err := f.ledger.RecentTransactions(context.Background(), accountID, limit)
	if err != nil {
		t.Fatalf("recent transactions for account %d: %v", accountID, err)
	}
	return *resp.Data
}
