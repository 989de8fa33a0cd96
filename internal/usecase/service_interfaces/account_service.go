package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID int64) (commons.Response[models.AccountResponse], error)
	ListAccountsByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error)
}
