package domain

import "time"

type Account struct {
	ID          int64
	CustomerID  int64
	AccountType string
	Balance     string
	CreatedAt   time.Time
}
