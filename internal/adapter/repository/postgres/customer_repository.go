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

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"name": customer.Name,
	})

	const query = `
INSERT INTO customers (name, email, phone)
VALUES ($1, $2, $3)
RETURNING customer_id, created_at`

	var id int64
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.Name,
		customer.Email,
		customer.Phone,
	).Scan(&id, &createdAt); err != nil {
		logger.Error("customer repository create failed", err, logger.Fields{
			"name": customer.Name,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt

	logger.Info("customer repository create success", logger.Fields{
		"customerId": customer.ID,
	})

	return customer, nil
}

func (r *CustomerRepository) Get(ctx context.Context, customerID int64) (domain.Customer, error) {
	const query = `
SELECT customer_id, name, email, phone, created_at
FROM customers
WHERE customer_id = $1`

	var (
		customer domain.Customer
		email    sql.NullString
		phone    sql.NullString
	)

	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.Name,
		&email,
		&phone,
		&customer.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": customerID,
			})
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	if email.Valid {
		value := email.String
		customer.Email = &value
	}
	if phone.Valid {
		value := phone.String
		customer.Phone = &value
	}

	return customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `
SELECT customer_id, name, email, phone, created_at
FROM customers
ORDER BY customer_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("customer repository list failed", err, nil)
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var (
			customer domain.Customer
			email    sql.NullString
			phone    sql.NullString
		)
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&email,
			&phone,
			&customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		if email.Valid {
			value := email.String
			customer.Email = &value
		}
		if phone.Valid {
			value := phone.String
			customer.Phone = &value
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}
