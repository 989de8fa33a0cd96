package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"customerId":  account.CustomerID,
		"accountType": account.AccountType,
	})

	const query = `
INSERT INTO accounts (customer_id, account_type, balance)
VALUES ($1, $2, $3::numeric)
RETURNING account_id, created_at`

	var id int64
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.AccountType,
		account.Balance,
	).Scan(&id, &createdAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt

	logger.Info("account repository create success", logger.Fields{
		"accountId":  account.ID,
		"customerId": account.CustomerID,
	})

	return account, nil
}

func (r *AccountRepository) Get(ctx context.Context, accountID int64) (domain.Account, error) {
	const query = `
SELECT account_id, customer_id, account_type, balance, created_at
FROM accounts
WHERE account_id = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountType,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	const query = `
SELECT account_id, customer_id, account_type, balance, created_at
FROM accounts
WHERE customer_id = $1
ORDER BY account_id`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("account repository list by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list accounts by customer: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.AccountType,
			&account.Balance,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}
