package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/directory"
	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/ledger"
	"github.com/afrifa-micro/banking-core/internal/models"
	"github.com/afrifa-micro/banking-core/internal/models/events"
)

// TopicDepositCommitted is the event topic for committed batch entries.
const TopicDepositCommitted = "deposit_committed"

// Processor commits deposit batches. Entries are applied independently, in
// order: a bad entry is skipped, never aborts the batch, and nothing already
// committed is rolled back. Only a storage failure stops the remaining batch.
type Processor struct {
	directory *directory.Directory
	ledger    *ledger.Ledger
	publisher interfaces.EventPublisher
	log       zerolog.Logger
}

func NewProcessor(dir *directory.Directory, led *ledger.Ledger, publisher interfaces.EventPublisher, log zerolog.Logger) *Processor {
	return &Processor{
		directory: dir,
		ledger:    led,
		publisher: publisher,
		log:       log,
	}
}

// CommitBatch applies each entry: resolve the customer, resolve (or open) the
// account, and apply the deposit through the ledger. Entries with an
// unresolvable customer or a non-positive amount are skipped silently and
// counted. Returns models.ErrEmptyBatch when nothing validated, and a wrapped
// storage error when the backing store fails mid-batch; in both cases the
// returned result reflects whatever was committed before the stop.
func (p *Processor) CommitBatch(ctx context.Context, entries []models.DepositEntry) (models.BatchResult, error) {
	result := models.BatchResult{
		BatchID: uuid.New().String(),
		Entries: []models.CommittedEntry{},
	}

	for i, entry := range entries {
		if entry.DepositAmount.Cmp(decimal.Zero) <= 0 {
			p.log.Debug().Int("entry", i).Str("customer_id", entry.CustomerID).Msg("skipping non-positive amount")
			result.SkippedCount++
			continue
		}

		_, err := p.directory.GetCustomer(ctx, entry.CustomerID)
		if errors.Is(err, models.ErrCustomerNotFound) {
			p.log.Debug().Int("entry", i).Str("customer_id", entry.CustomerID).Msg("skipping unresolved customer")
			result.SkippedCount++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("resolve customer %s: %w", entry.CustomerID, err)
		}

		account, err := p.resolveAccount(ctx, entry.CustomerID)
		if err != nil {
			return result, fmt.Errorf("resolve account for %s: %w", entry.CustomerID, err)
		}

		record, err := p.ledger.ApplyDeposit(ctx, models.TransactionRecord{
			ID:            uuid.New().String(),
			BatchID:       result.BatchID,
			CustomerID:    entry.CustomerID,
			AccountNumber: account.AccountNumber,
			Amount:        entry.DepositAmount,
		})
		if errors.Is(err, models.ErrInvalidAmount) {
			result.SkippedCount++
			continue
		}
		if err != nil {
			// Storage failure: stop here. Entries 1..i-1 stay committed and
			// each of them has its consistent {balance, record} pair.
			return result, err
		}

		result.CommittedCount++
		result.Entries = append(result.Entries, models.CommittedEntry{
			CustomerID:    record.CustomerID,
			AccountNumber: record.AccountNumber,
			NewBalance:    record.NewBalance,
			TransactionID: record.ID,
		})

		p.publish(record)
	}

	if result.CommittedCount == 0 {
		return result, models.ErrEmptyBatch
	}

	p.log.Info().
		Str("batch_id", result.BatchID).
		Int("committed", result.CommittedCount).
		Int("skipped", result.SkippedCount).
		Msg("batch committed")
	return result, nil
}

// resolveAccount finds the customer's account. A registered customer with no
// account gets one opened on first deposit, starting from zero.
func (p *Processor) resolveAccount(ctx context.Context, customerID string) (models.Account, error) {
	account, err := p.directory.AccountFor(ctx, customerID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, models.ErrNoAccount) {
		return models.Account{}, err
	}
	return p.directory.OpenAccount(ctx, customerID, directory.DefaultAccountType, decimal.Zero)
}

// publish is fire-and-forget: a dead broker must not fail a committed deposit.
func (p *Processor) publish(record models.TransactionRecord) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.Publish(TopicDepositCommitted, events.DepositCommitted{
		TransactionID: record.ID,
		BatchID:       record.BatchID,
		CustomerID:    record.CustomerID,
		AccountNumber: record.AccountNumber,
		Amount:        record.Amount,
		NewBalance:    record.NewBalance,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		p.log.Warn().Err(err).Str("transaction_id", record.ID).Msg("publish deposit event")
	}
}
