package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/repository/memory"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func seedAccount(t *testing.T, store *memory.Store, balance string) int64 {
	t.Helper()
	ctx := context.Background()

	customer, err := memory.NewCustomerRepository(store).Create(ctx, domain.Customer{Name: "Test Customer"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	account, err := memory.NewAccountRepository(store).Create(ctx, domain.Account{
		CustomerID:  customer.ID,
		AccountType: "SAVINGS",
		Balance:     balance,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account.ID
}

func mustBalance(t *testing.T, store *memory.Store, accountID int64) string {
	t.Helper()
	account, err := memory.NewAccountRepository(store).Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get account %d: %v", accountID, err)
	}
	return account.Balance
}

func TestLedgerRepositoryWithdrawGuardsBalance(t *testing.T) {
	store := memory.New()
	repo := memory.NewLedgerRepository(store)
	accountID := seedAccount(t, store, "10.00")

	err := repo.Withdraw(context.Background(), accountID, decimal.RequireFromString("10.01"), "test")
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := mustBalance(t, store, accountID); got != "10.00" {
		t.Fatalf("balance changed by rejected withdrawal: %s", got)
	}
}

func TestLedgerRepositoryConcurrentWithdrawals(t *testing.T) {
	store := memory.New()
	repo := memory.NewLedgerRepository(store)
	accountID := seedAccount(t, store, "100.00")

	amount := decimal.RequireFromString("100.00")
	results := make([]error, 8)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			results[i] = repo.Withdraw(context.Background(), accountID, amount, "race test")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	successes := 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, commons.ErrInsufficientBalance):
		default:
			t.Fatalf("unexpected withdrawal error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}
	if got := mustBalance(t, store, accountID); got != "0.00" {
		t.Fatalf("expected balance 0.00, got %s", got)
	}
}

func TestLedgerRepositoryTransferFaultRollsBackDebit(t *testing.T) {
	store := memory.New()
	repo := memory.NewLedgerRepository(store)
	source := seedAccount(t, store, "50.00")
	destination := seedAccount(t, store, "0.00")

	fault := errors.New("disk full")
	store.FailOnce("transfer.credit", fault)

	err := repo.Transfer(context.Background(), source, destination, decimal.RequireFromString("20.00"), "debit", "credit")
	if !errors.Is(err, fault) {
		t.Fatalf("expected injected fault, got %v", err)
	}

	if got := mustBalance(t, store, source); got != "50.00" {
		t.Fatalf("debit not rolled back: %s", got)
	}
	if got := mustBalance(t, store, destination); got != "0.00" {
		t.Fatalf("destination credited despite fault: %s", got)
	}

	records, err := repo.RecentTransactions(context.Background(), source, 10)
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("failed transfer left %d records", len(records))
	}
}

func TestLedgerRepositoryFailpointIsOneShot(t *testing.T) {
	store := memory.New()
	repo := memory.NewLedgerRepository(store)
	accountID := seedAccount(t, store, "0.00")

	store.FailOnce("deposit", errors.New("transient outage"))

	if err := repo.Deposit(context.Background(), accountID, decimal.RequireFromString("5.00"), "first attempt"); err == nil {
		t.Fatal("expected armed failpoint to fire")
	}
	if err := repo.Deposit(context.Background(), accountID, decimal.RequireFromString("5.00"), "retry"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got := mustBalance(t, store, accountID); got != "5.00" {
		t.Fatalf("expected balance 5.00, got %s", got)
	}
}

func TestLedgerRepositoryRecentTransactionsOrderAndLimit(t *testing.T) {
	store := memory.New()
	repo := memory.NewLedgerRepository(store)
	accountID := seedAccount(t, store, "0.00")

	for i := 0; i < 12; i++ {
		if err := repo.Deposit(context.Background(), accountID, decimal.RequireFromString("1.00"), "seed"); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
	}

	records, err := repo.RecentTransactions(context.Background(), accountID, 0)
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected default limit of 10, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].ID <= records[i].ID {
			t.Fatalf("records not newest first at position %d", i)
		}
	}
}
