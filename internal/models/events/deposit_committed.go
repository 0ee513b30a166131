package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositCommitted is published once per committed batch entry.
type DepositCommitted struct {
	TransactionID string          `json:"transaction_id"`
	BatchID       string          `json:"batch_id"`
	CustomerID    string          `json:"customer_id"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
