package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/directory"
	"github.com/afrifa-micro/banking-core/internal/ledger"
	"github.com/afrifa-micro/banking-core/internal/models"
	"github.com/afrifa-micro/banking-core/internal/models/events"
	"github.com/afrifa-micro/banking-core/internal/storage/memory"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []events.DepositCommitted
}

func (c *capturePublisher) Publish(topic string, event any) error {
	c.events = append(c.events, event.(events.DepositCommitted))
	return nil
}

// failingStore wraps the memory store and fails ApplyDeposit after the first
// failAfter successful calls.
type failingStore struct {
	*memory.MemoryStore
	failAfter int
	calls     int
}

func (f *failingStore) ApplyDeposit(ctx context.Context, record models.TransactionRecord) (decimal.Decimal, error) {
	if f.calls >= f.failAfter {
		return decimal.Zero, errors.New("store unavailable")
	}
	f.calls++
	return f.MemoryStore.ApplyDeposit(ctx, record)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func registerCustomer(t *testing.T, dir *directory.Directory, id string) models.Customer {
	t.Helper()
	customer, err := dir.RegisterCustomer(context.Background(), models.Customer{
		ID:            id,
		FirstName:     "Ama",
		LastName:      "Mensah",
		Gender:        "female",
		DateOfBirth:   "1990-04-12",
		Citizenship:   "Ghanaian",
		MaritalStatus: "single",
		Hometown:      "Kumasi",
	})
	if err != nil {
		t.Fatalf("RegisterCustomer(%s) err=%v", id, err)
	}
	return customer
}

func newTestProcessor(t *testing.T) (*Processor, *directory.Directory, *ledger.Ledger, *memory.MemoryStore, *capturePublisher) {
	t.Helper()
	store := memory.NewMemoryStore()
	log := zerolog.Nop()
	dir := directory.NewDirectory(store, log)
	led := ledger.NewLedger(store, log)
	pub := &capturePublisher{}
	return NewProcessor(dir, led, pub, log), dir, led, store, pub
}

func TestCommitBatchSingleEntry(t *testing.T) {
	proc, dir, led, store, pub := newTestProcessor(t)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS001")
	if _, err := dir.OpenAccount(ctx, "CUS001", "Savings", amount("500.00")); err != nil {
		t.Fatal(err)
	}

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS001", DepositAmount: amount("200.00")},
	})
	if err != nil {
		t.Fatalf("CommitBatch err=%v", err)
	}
	if result.CommittedCount != 1 || result.SkippedCount != 0 {
		t.Fatalf("committed=%d skipped=%d want 1/0", result.CommittedCount, result.SkippedCount)
	}
	if result.BatchID == "" {
		t.Fatal("batch id should be set")
	}
	if got := result.Entries[0]; got.AccountNumber != "ACC001" || !got.NewBalance.Equal(amount("700.00")) {
		t.Fatalf("entry=%+v want ACC001/700.00", got)
	}

	balance, err := led.GetBalance(ctx, "ACC001")
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Equal(amount("700.00")) {
		t.Fatalf("balance=%s want 700.00", balance)
	}

	records, err := store.ListByCustomer(ctx, "CUS001")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records=%d want 1", len(records))
	}
	rec := records[0]
	if rec.AccountNumber != "ACC001" ||
		!rec.Amount.Equal(amount("200.00")) ||
		!rec.PreviousBalance.Equal(amount("500.00")) ||
		!rec.NewBalance.Equal(amount("700.00")) ||
		rec.Status != models.StatusCompleted {
		t.Fatalf("record=%+v", rec)
	}
	if rec.BatchID != result.BatchID {
		t.Fatalf("record batch id=%s want %s", rec.BatchID, result.BatchID)
	}

	if len(pub.events) != 1 || pub.events[0].TransactionID != rec.ID {
		t.Fatalf("published events=%+v", pub.events)
	}
}

// Two entries against the same account must apply sequentially, each from the
// ledger's latest balance, and produce two distinct records.
func TestCommitBatchSameAccountTwice(t *testing.T) {
	proc, dir, led, store, _ := newTestProcessor(t)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS001")

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS001", DepositAmount: amount("100")},
		{CustomerID: "CUS001", DepositAmount: amount("50")},
	})
	if err != nil {
		t.Fatalf("CommitBatch err=%v", err)
	}
	if result.CommittedCount != 2 {
		t.Fatalf("committed=%d want 2", result.CommittedCount)
	}

	balance, _ := led.GetBalance(ctx, "ACC001")
	if !balance.Equal(amount("150")) {
		t.Fatalf("balance=%s want 150", balance)
	}

	records, _ := store.ListByCustomer(ctx, "CUS001")
	if len(records) != 2 {
		t.Fatalf("records=%d want 2 distinct records, never one merged", len(records))
	}
	// Newest first: the 50 on top of 100, then the 100 from zero.
	if !records[0].PreviousBalance.Equal(amount("100")) || !records[0].NewBalance.Equal(amount("150")) {
		t.Fatalf("second record=%+v want 100->150", records[0])
	}
	if !records[1].PreviousBalance.Equal(amount("0")) || !records[1].NewBalance.Equal(amount("100")) {
		t.Fatalf("first record=%+v want 0->100", records[1])
	}
}

func TestCommitBatchSkipsInvalidEntries(t *testing.T) {
	proc, dir, led, store, pub := newTestProcessor(t)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS001")

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS999", DepositAmount: amount("50")},
		{CustomerID: "CUS001", DepositAmount: amount("0")},
	})
	if !errors.Is(err, models.ErrEmptyBatch) {
		t.Fatalf("err=%v want ErrEmptyBatch", err)
	}
	if result.CommittedCount != 0 || result.SkippedCount != 2 {
		t.Fatalf("committed=%d skipped=%d want 0/2", result.CommittedCount, result.SkippedCount)
	}

	balance, _ := led.GetBalance(ctx, "ACC001")
	if !balance.IsZero() {
		t.Fatalf("balance=%s want 0, no ledger mutation", balance)
	}
	if records, _ := store.ListRecent(ctx, 10); len(records) != 0 {
		t.Fatalf("records=%d want none", len(records))
	}
	if len(pub.events) != 0 {
		t.Fatalf("events=%d want none", len(pub.events))
	}
}

func TestCommitBatchNegativeAmountSkipped(t *testing.T) {
	proc, dir, _, _, _ := newTestProcessor(t)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS001")

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS001", DepositAmount: amount("-25")},
		{CustomerID: "CUS001", DepositAmount: amount("75")},
	})
	if err != nil {
		t.Fatalf("CommitBatch err=%v", err)
	}
	if result.CommittedCount != 1 || result.SkippedCount != 1 {
		t.Fatalf("committed=%d skipped=%d want 1/1", result.CommittedCount, result.SkippedCount)
	}
}

// A customer with no account gets one opened by the first deposit.
func TestCommitBatchOpensAccountOnFirstDeposit(t *testing.T) {
	proc, dir, _, _, _ := newTestProcessor(t)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS007")

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS007", DepositAmount: amount("30")},
	})
	if err != nil {
		t.Fatalf("CommitBatch err=%v", err)
	}
	if result.Entries[0].AccountNumber != "ACC007" {
		t.Fatalf("account=%s want ACC007", result.Entries[0].AccountNumber)
	}

	account, err := dir.AccountFor(ctx, "CUS007")
	if err != nil {
		t.Fatalf("AccountFor err=%v", err)
	}
	if account.AccountType != directory.DefaultAccountType || !account.Balance.Equal(amount("30")) {
		t.Fatalf("account=%+v", account)
	}
}

// A storage failure aborts the remaining batch; earlier entries stay
// committed and the result reports them.
func TestCommitBatchStorageFailureMidBatch(t *testing.T) {
	store := &failingStore{MemoryStore: memory.NewMemoryStore(), failAfter: 1}
	log := zerolog.Nop()
	dir := directory.NewDirectory(store, log)
	led := ledger.NewLedger(store, log)
	proc := NewProcessor(dir, led, nil, log)
	ctx := context.Background()

	registerCustomer(t, dir, "CUS001")
	registerCustomer(t, dir, "CUS002")

	result, err := proc.CommitBatch(ctx, []models.DepositEntry{
		{CustomerID: "CUS001", DepositAmount: amount("10")},
		{CustomerID: "CUS002", DepositAmount: amount("20")},
	})
	if err == nil || errors.Is(err, models.ErrEmptyBatch) {
		t.Fatalf("err=%v want storage failure", err)
	}
	if result.CommittedCount != 1 {
		t.Fatalf("committed=%d want 1", result.CommittedCount)
	}

	balance, _ := led.GetBalance(ctx, "ACC001")
	if !balance.Equal(amount("10")) {
		t.Fatalf("first entry balance=%s want 10", balance)
	}
	records, _ := store.ListRecent(ctx, 10)
	if len(records) != 1 {
		t.Fatalf("records=%d want 1, balance and history must agree", len(records))
	}
}
