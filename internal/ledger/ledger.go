package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/models"
)

// Ledger is the single point of balance mutation. It wraps a LedgerStore and
// serializes deposits per account so two entries against the same account
// each recompute from the store's latest balance, never from a stale
// snapshot.
type Ledger struct {
	store interfaces.LedgerStore
	log   zerolog.Logger

	muMap map[string]*sync.Mutex // one mutex per account number
	mapMu sync.Mutex             // protects muMap itself
}

func NewLedger(store interfaces.LedgerStore, log zerolog.Logger) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
		muMap: make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) accountLock(accountNumber string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountNumber]; !exists {
		l.muMap[accountNumber] = &sync.Mutex{}
	}
	return l.muMap[accountNumber]
}

// GetBalance returns the account's current balance, zero when the account has
// no balance row yet.
func (l *Ledger) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	return l.store.GetBalance(ctx, accountNumber)
}

// ApplyDeposit validates the amount, reads the prior balance, and commits the
// record with prior and new balances filled in. The store applies the balance
// increment and the history append atomically; the per-account lock keeps the
// read-then-apply pair consistent for same-account deposits in one batch.
func (l *Ledger) ApplyDeposit(ctx context.Context, record models.TransactionRecord) (models.TransactionRecord, error) {
	if record.Amount.Cmp(decimal.Zero) <= 0 {
		return models.TransactionRecord{}, models.ErrInvalidAmount
	}

	mu := l.accountLock(record.AccountNumber)
	mu.Lock()
	defer mu.Unlock()

	prior, err := l.store.GetBalance(ctx, record.AccountNumber)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("read balance for %s: %w", record.AccountNumber, err)
	}

	record.PreviousBalance = prior
	record.NewBalance = prior.Add(record.Amount)
	record.Status = models.StatusCompleted
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	newBalance, err := l.store.ApplyDeposit(ctx, record)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("apply deposit to %s: %w", record.AccountNumber, err)
	}
	// The store recomputes the balance itself; keep its answer authoritative.
	record.NewBalance = newBalance

	l.log.Debug().
		Str("account", record.AccountNumber).
		Str("amount", record.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("deposit applied")

	return record, nil
}
