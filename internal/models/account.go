package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the authoritative balance for one customer. A customer has at
// most one account in this flow.
type Account struct {
	AccountNumber string          `json:"account_number"`
	CustomerID    string          `json:"customer_id"`
	AccountName   string          `json:"account_name"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountNumberFor derives the account number from a customer id:
// CUS001 becomes ACC001, bare ids are left-padded to six digits.
func AccountNumberFor(customerID string) string {
	if rest, ok := strings.CutPrefix(customerID, "CUS"); ok {
		return "ACC" + rest
	}
	padded := customerID
	for len(padded) < 6 {
		padded = "0" + padded
	}
	return "ACC" + padded
}

// CustomerAccount is the directory's search view: one customer joined with
// their account snapshot, or HasAccount=false when none has been opened yet.
type CustomerAccount struct {
	CustomerID    string          `json:"customer_id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	AccountName   string          `json:"account_name,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	HasAccount    bool            `json:"has_account"`
}
