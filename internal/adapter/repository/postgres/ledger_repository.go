package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const defaultHistoryLimit = 10

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, details string) (err error) {
	logger.Info("ledger repository deposit", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository deposit begin tx failed", err, nil)
		return fmt.Errorf("begin deposit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE account_id = $1`

	result, err := tx.ExecContext(ctx, creditQuery, accountID, amount)
	if err != nil {
		logger.Error("ledger repository deposit credit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("credit account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit account rows affected: %w", err)
	}
	if rows == 0 {
		err = commons.ErrRecordNotFound
		return err
	}

	if err = insertTransaction(ctx, tx, accountID, domain.TransactionTypeDeposit, amount, details); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository deposit commit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("commit deposit transaction: %w", err)
	}

	logger.Info("ledger repository deposit success", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})
	return nil
}

func (r *LedgerRepository) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, details string) (err error) {
	logger.Info("ledger repository withdraw", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository withdraw begin tx failed", err, nil)
		return fmt.Errorf("begin withdraw transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The balance guard lives in the WHERE clause so the check and the
	// decrement are a single statement; two racing withdrawals cannot both
	// pass against a stale balance.
	const debitQuery = `
UPDATE accounts
SET balance = balance - $2::numeric
WHERE account_id = $1
  AND balance >= $2::numeric`

	result, err := tx.ExecContext(ctx, debitQuery, accountID, amount)
	if err != nil {
		logger.Error("ledger repository withdraw debit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("debit account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit account rows affected: %w", err)
	}
	if rows == 0 {
		err = r.classifyDebitFailure(ctx, tx, accountID)
		return err
	}

	if err = insertTransaction(ctx, tx, accountID, domain.TransactionTypeWithdraw, amount, details); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository withdraw commit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("commit withdraw transaction: %w", err)
	}

	logger.Info("ledger repository withdraw success", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})
	return nil
}

func (r *LedgerRepository) Transfer(ctx context.Context, fromAccountID int64, toAccountID int64, amount decimal.Decimal, debitDetails string, creditDetails string) (err error) {
	logger.Info("ledger repository transfer", logger.Fields{
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository transfer begin tx failed", err, nil)
		return fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock both rows in ascending id order before reading balances, so
	// opposite-direction transfers cannot deadlock and no other writer can
	// slip between the balance check and the updates.
	const lockQuery = `
SELECT account_id, balance
FROM accounts
WHERE account_id = ANY($1)
ORDER BY account_id
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, lockQuery, pq.Array([]int64{fromAccountID, toAccountID}))
	if err != nil {
		logger.Error("ledger repository transfer lock failed", err, nil)
		return fmt.Errorf("lock transfer accounts: %w", err)
	}

	balances := make(map[int64]string, 2)
	for rows.Next() {
		var id int64
		var balance string
		if scanErr := rows.Scan(&id, &balance); scanErr != nil {
			rows.Close()
			err = fmt.Errorf("scan locked account row: %w", scanErr)
			return err
		}
		balances[id] = balance
	}
	if closeErr := rows.Close(); closeErr != nil {
		err = fmt.Errorf("close locked account rows: %w", closeErr)
		return err
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		err = fmt.Errorf("iterate locked account rows: %w", rowsErr)
		return err
	}

	sourceBalance, ok := balances[fromAccountID]
	if !ok {
		err = commons.ErrRecordNotFound
		return err
	}
	if _, ok := balances[toAccountID]; !ok {
		err = commons.ErrRecordNotFound
		return err
	}

	available, err := decimal.NewFromString(sourceBalance)
	if err != nil {
		return fmt.Errorf("parse source balance: %w", err)
	}
	if available.LessThan(amount) {
		err = commons.ErrInsufficientBalance
		return err
	}

	const debitQuery = `
UPDATE accounts
SET balance = balance - $2::numeric
WHERE account_id = $1`
	if err = execRequiredRows(ctx, tx, debitQuery, fromAccountID, amount); err != nil {
		return err
	}

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE account_id = $1`
	if err = execRequiredRows(ctx, tx, creditQuery, toAccountID, amount); err != nil {
		return err
	}

	if err = insertTransaction(ctx, tx, fromAccountID, domain.TransactionTypeTransfer, amount, debitDetails); err != nil {
		return err
	}
	if err = insertTransaction(ctx, tx, toAccountID, domain.TransactionTypeDeposit, amount, creditDetails); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository transfer commit failed", err, logger.Fields{
			"fromAccountId": fromAccountID,
			"toAccountId":   toAccountID,
		})
		return fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("ledger repository transfer success", logger.Fields{
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount,
	})
	return nil
}

func (r *LedgerRepository) RecentTransactions(ctx context.Context, accountID int64, limit int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	const query = `
SELECT transaction_id, account_id, type, amount, details, created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at DESC, transaction_id DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		logger.Error("ledger repository recent transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0, limit)
	for rows.Next() {
		var record domain.TransactionRecord
		var details sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.Type,
			&record.Amount,
			&details,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if details.Valid {
			value := details.String
			record.Details = &value
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) classifyDebitFailure(ctx context.Context, tx *sql.Tx, accountID int64) error {
	var balance string
	err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE account_id = $1`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return commons.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("classify debit failure: %w", err)
	}
	return commons.ErrInsufficientBalance
}

func insertTransaction(ctx context.Context, tx *sql.Tx, accountID int64, txType domain.TransactionType, amount decimal.Decimal, details string) error {
	const query = `
INSERT INTO transactions (account_id, type, amount, details)
VALUES ($1, $2, $3::numeric, $4)`

	if _, err := tx.ExecContext(ctx, query, accountID, txType, amount, details); err != nil {
		return fmt.Errorf("insert %s transaction: %w", txType, err)
	}
	return nil
}

func execRequiredRows(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("execute transaction statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return errors.New("transaction posting failed: no rows updated")
	}
	return nil
}
