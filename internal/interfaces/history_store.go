package interfaces

import (
	"context"
	"time"

	"github.com/afrifa-micro/banking-core/internal/models"
)

// HistoryStore reads the append-only transaction log. Appends happen only
// inside LedgerStore.ApplyDeposit.
type HistoryStore interface {
	// ListByCustomer returns the customer's records, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.TransactionRecord, error)
	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.TransactionRecord, error)
	// ListSince returns records committed at or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]models.TransactionRecord, error)
}
