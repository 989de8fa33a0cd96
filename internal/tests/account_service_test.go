package services_test

import (
	"context"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
)

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.accounts.CreateAccount(context.Background(), models.CreateAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty create account request")
	}
}

func TestAccountServiceCreateAccountUnknownCustomer(t *testing.T) {
	f := newFixture()

	resp, err := f.accounts.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:  7,
		AccountType: "SAVINGS",
	})
	if err == nil {
		t.Fatal("expected error for unknown customer")
	}
	if resp.Message != "Customer not found" {
		t.Fatalf("expected customer-not-found message, got %q", resp.Message)
	}
}

func TestAccountServiceCreateAccountStartsAtZero(t *testing.T) {
	f := newFixture()

	customerID := f.newCustomer(t, "Alice")
	resp, err := f.accounts.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:  customerID,
		AccountType: "savings",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected zero opening balance, got %s", resp.Data.Balance)
	}
	if resp.Data.AccountType != "SAVINGS" {
		t.Fatalf("expected normalized account type SAVINGS, got %s", resp.Data.AccountType)
	}
}

func TestAccountServiceGetAccountNotFound(t *testing.T) {
	f := newFixture()

	resp, err := f.accounts.GetAccount(context.Background(), 99)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected account-not-found message, got %q", resp.Message)
	}
}

func TestAccountServiceListAccountsByCustomer(t *testing.T) {
	f := newFixture()

	alice := f.newCustomer(t, "Alice")
	bob := f.newCustomer(t, "Bob")
	f.newAccount(t, alice, "SAVINGS")
	f.newAccount(t, alice, "CURRENT")
	f.newAccount(t, bob, "SAVINGS")

	resp, err := f.accounts.ListAccountsByCustomer(context.Background(), alice)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}

	accounts := *resp.Data
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts for customer %d, got %d", alice, len(accounts))
	}
	for _, account := range accounts {
		if account.CustomerID != alice {
			t.Fatalf("account %d belongs to customer %d, want %d", account.ID, account.CustomerID, alice)
		}
	}
}
