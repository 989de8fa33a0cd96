package services_test

import (
	"context"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
)

func TestCustomerServiceCreateCustomerValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.customers.CreateCustomer(context.Background(), models.CreateCustomerRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty create customer request")
	}
}

func TestCustomerServiceCreateAndGet(t *testing.T) {
	f := newFixture()

	resp, err := f.customers.CreateCustomer(context.Background(), models.CreateCustomerRequest{
		Name:  "Alice",
		Email: "a@x.com",
		Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success response, got %q", resp.Message)
	}
	if resp.Data.ID != 1 {
		t.Fatalf("expected first customer id 1, got %d", resp.Data.ID)
	}

	got, err := f.customers.GetCustomer(context.Background(), resp.Data.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Data.Name != "Alice" || got.Data.Email != "a@x.com" || got.Data.Phone != "555-0100" {
		t.Fatalf("unexpected customer data: %+v", got.Data)
	}
}

func TestCustomerServiceGetCustomerNotFound(t *testing.T) {
	f := newFixture()

	resp, err := f.customers.GetCustomer(context.Background(), 42)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if resp.Message != "Customer not found" {
		t.Fatalf("expected customer-not-found message, got %q", resp.Message)
	}
}

func TestCustomerServiceListCustomersIDOrder(t *testing.T) {
	f := newFixture()

	f.newCustomer(t, "Alice")
	f.newCustomer(t, "Bob")
	f.newCustomer(t, "Carol")

	resp, err := f.customers.ListCustomers(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}

	customers := *resp.Data
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		if customers[i].Name != name {
			t.Fatalf("expected %q at position %d, got %q", name, i, customers[i].Name)
		}
	}
}
