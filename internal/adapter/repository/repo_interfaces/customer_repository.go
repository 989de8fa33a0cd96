package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Get(ctx context.Context, customerID int64) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}
