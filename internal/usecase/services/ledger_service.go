package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/events"
	"github.com/corebank/ledger-service/internal/logger"
	"github.com/corebank/ledger-service/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerService struct {
	ledgerRepo  repo_interfaces.LedgerRepository
	accountRepo repo_interfaces.AccountRepository
	publisher   events.Publisher
	collector   *metrics.Collector
	eventTopic  string
}

func NewLedgerService(
	ledgerRepo repo_interfaces.LedgerRepository,
	accountRepo repo_interfaces.AccountRepository,
	publisher events.Publisher,
	collector *metrics.Collector,
	eventTopic string,
) *LedgerService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		collector:   collector,
		eventTopic:  strings.TrimSpace(eventTopic),
	}
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.BalanceResponse], error) {
	start := time.Now()
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service deposit validation failed", err, nil)
		s.collector.RecordOperation("deposit", "declined", time.Since(start))
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if err := s.ledgerRepo.Deposit(ctx, req.AccountID, amount, "Deposit via app"); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			s.collector.RecordOperation("deposit", "declined", time.Since(start))
			return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
		}
		logger.Error("ledger service deposit failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		s.collector.RecordOperation("deposit", "failed", time.Since(start))
		return commons.ErrorResponse[models.BalanceResponse]("failed to process deposit", "Unable to process deposit right now"), err
	}

	s.publishEvent(events.TransactionPosted{
		Reference:  uuid.NewString(),
		Type:       string(domain.TransactionTypeDeposit),
		AccountID:  req.AccountID,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
	s.collector.RecordOperation("deposit", "success", time.Since(start))

	response, err := s.balanceResponse(ctx, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.BalanceResponse]("failed to process deposit", "Unable to fetch balance right now"), err
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"accountId": req.AccountID,
		"amount":    amount,
	})

	return commons.SuccessResponse("deposit successful", response), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.BalanceResponse], error) {
	start := time.Now()
	logger.Info("ledger service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service withdraw validation failed", err, nil)
		s.collector.RecordOperation("withdraw", "declined", time.Since(start))
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if err := s.ledgerRepo.Withdraw(ctx, req.AccountID, amount, "Withdrawal via app"); err != nil {
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			s.collector.RecordOperation("withdraw", "declined", time.Since(start))
			return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
		case errors.Is(err, commons.ErrInsufficientBalance):
			s.collector.RecordOperation("withdraw", "declined", time.Since(start))
			return commons.ErrorResponse[models.BalanceResponse]("Insufficient balance", err.Error()), err
		default:
			logger.Error("ledger service withdraw failed", err, logger.Fields{
				"accountId": req.AccountID,
			})
			s.collector.RecordOperation("withdraw", "failed", time.Since(start))
			return commons.ErrorResponse[models.BalanceResponse]("failed to process withdrawal", "Unable to process withdrawal right now"), err
		}
	}

	s.publishEvent(events.TransactionPosted{
		Reference:  uuid.NewString(),
		Type:       string(domain.TransactionTypeWithdraw),
		AccountID:  req.AccountID,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
	s.collector.RecordOperation("withdraw", "success", time.Since(start))

	response, err := s.balanceResponse(ctx, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.BalanceResponse]("failed to process withdrawal", "Unable to fetch balance right now"), err
	}

	logger.Info("ledger service withdraw success", logger.Fields{
		"accountId": req.AccountID,
		"amount":    amount,
	})

	return commons.SuccessResponse("withdrawal successful", response), nil
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	start := time.Now()
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service transfer validation failed", err, nil)
		s.collector.RecordOperation("transfer", "declined", time.Since(start))
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	if req.FromAccountID == req.ToAccountID {
		err := fmt.Errorf("fromAccountId and toAccountId cannot be the same")
		s.collector.RecordOperation("transfer", "declined", time.Since(start))
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	reference := uuid.NewString()
	debitDetails := fmt.Sprintf("Transfer to account %d ref %s", req.ToAccountID, reference)
	creditDetails := fmt.Sprintf("Transfer from account %d ref %s", req.FromAccountID, reference)

	if err := s.ledgerRepo.Transfer(ctx, req.FromAccountID, req.ToAccountID, amount, debitDetails, creditDetails); err != nil {
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			s.collector.RecordOperation("transfer", "declined", time.Since(start))
			return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
		case errors.Is(err, commons.ErrInsufficientBalance):
			s.collector.RecordOperation("transfer", "declined", time.Since(start))
			return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", err.Error()), err
		default:
			logger.Error("ledger service transfer failed", err, logger.Fields{
				"fromAccountId": req.FromAccountID,
				"toAccountId":   req.ToAccountID,
				"reference":     reference,
			})
			s.collector.RecordOperation("transfer", "failed", time.Since(start))
			return commons.ErrorResponse[models.TransferResponse]("transfer failed", "Unable to complete transfer posting"), err
		}
	}

	counterparty := req.ToAccountID
	s.publishEvent(events.TransactionPosted{
		Reference:      reference,
		Type:           string(domain.TransactionTypeTransfer),
		AccountID:      req.FromAccountID,
		CounterpartyID: &counterparty,
		Amount:         amount,
		OccurredAt:     time.Now(),
	})
	s.collector.RecordOperation("transfer", "success", time.Since(start))

	response := models.TransferResponse{
		Reference:     reference,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount.StringFixed(2),
	}
	if from, err := s.accountRepo.Get(ctx, req.FromAccountID); err == nil {
		response.FromBalance = from.Balance
	}
	if to, err := s.accountRepo.Get(ctx, req.ToAccountID); err == nil {
		response.ToBalance = to.Balance
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"fromAccountId": req.FromAccountID,
		"toAccountId":   req.ToAccountID,
		"amount":        amount,
		"reference":     reference,
	})

	return commons.SuccessResponse("transfer successful", response), nil
}

func (s *LedgerService) RecentTransactions(ctx context.Context, accountID int64, limit int) (commons.Response[[]models.TransactionResponse], error) {
	logger.Info("ledger service recent transactions request", logger.Fields{
		"accountId": accountID,
		"limit":     limit,
	})

	if accountID <= 0 {
		err := fmt.Errorf("accountId is required")
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error()), err
	}

	records, err := s.ledgerRepo.RecentTransactions(ctx, accountID, limit)
	if err != nil {
		logger.Error("ledger service recent transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	responses := make([]models.TransactionResponse, 0, len(records))
	for _, record := range records {
		response := models.TransactionResponse{
			ID:        record.ID,
			AccountID: record.AccountID,
			Type:      string(record.Type),
			Amount:    record.Amount,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		}
		if record.Details != nil {
			response.Details = *record.Details
		}
		responses = append(responses, response)
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

func (s *LedgerService) balanceResponse(ctx context.Context, accountID int64) (models.BalanceResponse, error) {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		logger.Error("ledger service balance lookup failed", err, logger.Fields{
			"accountId": accountID,
		})
		return models.BalanceResponse{}, err
	}
	return models.BalanceResponse{
		AccountID: account.ID,
		Balance:   account.Balance,
	}, nil
}

// publishEvent is best effort: the mutation has already committed and the
// transactions table is authoritative, so a publish failure is logged only.
func (s *LedgerService) publishEvent(event events.TransactionPosted) {
	if err := s.publisher.Publish(s.eventTopic, event); err != nil {
		logger.Error("ledger service publish event failed", err, logger.Fields{
			"reference": event.Reference,
			"type":      event.Type,
		})
	}
}
