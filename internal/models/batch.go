package models

import "github.com/shopspring/decimal"

// DepositEntry is one proposed deposit line within a batch. It exists only
// while the batch is being composed and committed.
type DepositEntry struct {
	CustomerID    string          `json:"customer_id"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// CommittedEntry reports the outcome of one applied entry.
type CommittedEntry struct {
	CustomerID    string          `json:"customer_id"`
	AccountNumber string          `json:"account_number"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	TransactionID string          `json:"transaction_id"`
}

// BatchResult summarizes a batch commit. Skipped entries are excluded, not
// failed; callers inspect SkippedCount.
type BatchResult struct {
	BatchID        string           `json:"batch_id"`
	CommittedCount int              `json:"committed_count"`
	SkippedCount   int              `json:"skipped_count"`
	Entries        []CommittedEntry `json:"entries"`
}
