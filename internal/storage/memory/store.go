package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/models"
)

// MemoryStore is the in-memory implementation of interfaces.Store. It keeps
// customers and accounts in maps and the transaction log in an append-only
// slice, all guarded by one mutex so a deposit's balance update and record
// append are atomic.
type MemoryStore struct {
	mu        sync.Mutex
	customers map[string]models.Customer
	accounts  map[string]models.Account // keyed by account number
	byOwner   map[string]string         // customer id -> account number
	records   []models.TransactionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[string]models.Customer),
		accounts:  make(map[string]models.Account),
		byOwner:   make(map[string]string),
	}
}

func (m *MemoryStore) SaveCustomer(ctx context.Context, customer models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.customers[customer.ID] = customer
	return nil
}

func (m *MemoryStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer, ok := m.customers[id]
	if !ok {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	return customer, nil
}

// SearchCustomers scans every customer; fine for the data volumes this store
// is meant for. Results are sorted by name so the output is stable.
func (m *MemoryStore) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(query)
	var result []models.Customer
	for _, c := range m.customers {
		if q == "" ||
			strings.Contains(strings.ToLower(c.FullName()), q) ||
			strings.Contains(strings.ToLower(c.Phone), q) ||
			strings.Contains(strings.ToLower(c.ID), q) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName() < result[j].FullName()
	})
	return result, nil
}

func (m *MemoryStore) CountCustomers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.customers), nil
}

func (m *MemoryStore) SaveAccount(ctx context.Context, account models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[account.AccountNumber] = account
	m.byOwner[account.CustomerID] = account.AccountNumber
	return nil
}

func (m *MemoryStore) AccountByCustomer(ctx context.Context, customerID string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	number, ok := m.byOwner[customerID]
	if !ok {
		return models.Account{}, models.ErrNoAccount
	}
	return m.accounts[number], nil
}

// GetBalance returns zero for an account with no balance row yet.
func (m *MemoryStore) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountNumber]
	if !ok {
		return decimal.Zero, nil
	}
	return account.Balance, nil
}

// ApplyDeposit updates the balance and appends the record under one lock, the
// in-memory equivalent of the SQL store's single transaction. A missing
// balance row is created starting at zero.
func (m *MemoryStore) ApplyDeposit(ctx context.Context, record models.TransactionRecord) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[record.AccountNumber]
	if !ok {
		account = models.Account{
			AccountNumber: record.AccountNumber,
			CustomerID:    record.CustomerID,
			CreatedAt:     record.CreatedAt,
		}
		m.byOwner[record.CustomerID] = record.AccountNumber
	}
	account.Balance = account.Balance.Add(record.Amount)
	m.accounts[record.AccountNumber] = account

	m.records = append(m.records, record)
	return account.Balance, nil
}

func (m *MemoryStore) ListByCustomer(ctx context.Context, customerID string) ([]models.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.TransactionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].CustomerID == customerID {
			result = append(result, m.records[i])
		}
	}
	return result, nil
}

func (m *MemoryStore) ListRecent(ctx context.Context, limit int) ([]models.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.TransactionRecord
	for i := len(m.records) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.records[i])
	}
	return result, nil
}

func (m *MemoryStore) ListSince(ctx context.Context, since time.Time) ([]models.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.TransactionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].CreatedAt.Before(since) {
			continue
		}
		result = append(result, m.records[i])
	}
	return result, nil
}

// Compile-time check: MemoryStore implements the full Store interface.
var _ interfaces.Store = (*MemoryStore)(nil)
