package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

type LedgerService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.BalanceResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.BalanceResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	RecentTransactions(ctx context.Context, accountID int64, limit int) (commons.Response[[]models.TransactionResponse], error)
}
