package models

import (
	"errors"
	"strings"
)

type CreateAccountRequest struct {
	CustomerID  int64  `json:"customerId"`
	AccountType string `json:"accountType"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		errs = append(errs, "accountType is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	AccountType string `json:"accountType"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"createdAt"`
}
