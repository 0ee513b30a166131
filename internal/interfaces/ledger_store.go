package interfaces

import (
	"context"

	"github.com/afrifa-micro/banking-core/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerStore is the balance side of the store. ApplyDeposit is the single
// mutating operation: it must increment the stored balance and append the
// transaction record atomically, so ledger and history never disagree on a
// committed entry.
type LedgerStore interface {
	// GetBalance returns zero for an account with no prior balance.
	GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
	// ApplyDeposit increments the balance by record.Amount, creating the
	// balance row if missing, appends the record, and returns the resulting
	// balance.
	ApplyDeposit(ctx context.Context, record models.TransactionRecord) (decimal.Decimal, error)
}
