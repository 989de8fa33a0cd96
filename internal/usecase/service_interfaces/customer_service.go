package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error)
	GetCustomer(ctx context.Context, customerID int64) (commons.Response[models.CustomerResponse], error)
	ListCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error)
}
