package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
}

func (r DepositRequest) Validate() error {
	return validateAmountRequest(r.AccountID, r.Amount)
}

type WithdrawRequest struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	return validateAmountRequest(r.AccountID, r.Amount)
}

type TransferRequest struct {
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId is required")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId is required")
	}
	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type BalanceResponse struct {
	AccountID int64  `json:"accountId"`
	Balance   string `json:"balance"`
}

type TransferResponse struct {
	Reference     string `json:"reference"`
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
	FromBalance   string `json:"fromBalance"`
	ToBalance     string `json:"toBalance"`
}

type TransactionResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func validateAmountRequest(accountID int64, amount string) error {
	var errs []string

	if accountID <= 0 {
		errs = append(errs, "accountId is required")
	}
	if err := validateAmount(amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateAmount(amount string) error {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return errors.New("amount is required")
	}

	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return errors.New("amount must be numeric")
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
