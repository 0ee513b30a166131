package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCompleted is the only status a committed record ever carries; records
// are written exactly once and never mutated.
const StatusCompleted = "completed"

// TransactionRecord is one applied deposit: the balance before and after, the
// batch it arrived in, and when it was committed. Append-only.
type TransactionRecord struct {
	ID              string          `json:"id"`
	BatchID         string          `json:"batch_id"`
	CustomerID      string          `json:"customer_id"`
	AccountNumber   string          `json:"account_number"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
