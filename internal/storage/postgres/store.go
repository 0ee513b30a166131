package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/models"
)

// PostgresStore implements interfaces.Store on top of *sql.DB. The deposit
// path runs balance upsert and record insert in one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables if they do not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS customers (
		id              TEXT PRIMARY KEY,
		first_name      TEXT NOT NULL,
		last_name       TEXT NOT NULL,
		other_names     TEXT NOT NULL DEFAULT '',
		gender          TEXT NOT NULL DEFAULT '',
		date_of_birth   TEXT NOT NULL DEFAULT '',
		citizenship     TEXT NOT NULL DEFAULT '',
		marital_status  TEXT NOT NULL DEFAULT '',
		hometown        TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS accounts (
		account_number  TEXT PRIMARY KEY,
		customer_id     TEXT NOT NULL UNIQUE,
		account_name    TEXT NOT NULL DEFAULT '',
		account_type    TEXT NOT NULL DEFAULT '',
		balance         NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id               TEXT PRIMARY KEY,
		batch_id         TEXT NOT NULL,
		customer_id      TEXT NOT NULL,
		account_number   TEXT NOT NULL,
		amount           NUMERIC(18,2) NOT NULL,
		previous_balance NUMERIC(18,2) NOT NULL,
		new_balance      NUMERIC(18,2) NOT NULL,
		status           TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions (customer_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_transactions_created ON transactions (created_at DESC);`

	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *PostgresStore) SaveCustomer(ctx context.Context, c models.Customer) error {
	const query = `INSERT INTO customers
		(id, first_name, last_name, other_names, gender, date_of_birth, citizenship, marital_status, hometown, phone, email, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET phone = EXCLUDED.phone, email = EXCLUDED.email`

	_, err := p.db.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.OtherNames, c.Gender, c.DateOfBirth,
		c.Citizenship, c.MaritalStatus, c.Hometown, c.Phone, c.Email, c.CreatedAt)
	return err
}

func (p *PostgresStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	const query = `SELECT id, first_name, last_name, other_names, gender, date_of_birth,
		citizenship, marital_status, hometown, phone, email, created_at
		FROM customers WHERE id = $1`

	var c models.Customer
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.OtherNames, &c.Gender, &c.DateOfBirth,
		&c.Citizenship, &c.MaritalStatus, &c.Hometown, &c.Phone, &c.Email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	if err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (p *PostgresStore) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	const q = `SELECT id, first_name, last_name, other_names, gender, date_of_birth,
		citizenship, marital_status, hometown, phone, email, created_at
		FROM customers
		WHERE first_name || ' ' || other_names || ' ' || last_name ILIKE $1
		   OR phone ILIKE $1
		   OR id ILIKE $1
		ORDER BY first_name, last_name`

	rows, err := p.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.OtherNames, &c.Gender, &c.DateOfBirth,
			&c.Citizenship, &c.MaritalStatus, &c.Hometown, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (p *PostgresStore) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

func (p *PostgresStore) SaveAccount(ctx context.Context, a models.Account) error {
	const query = `INSERT INTO accounts (account_number, customer_id, account_name, account_type, balance, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (account_number) DO UPDATE SET account_name = EXCLUDED.account_name, account_type = EXCLUDED.account_type`

	_, err := p.db.ExecContext(ctx, query,
		a.AccountNumber, a.CustomerID, a.AccountName, a.AccountType, a.Balance, a.CreatedAt)
	return err
}

func (p *PostgresStore) AccountByCustomer(ctx context.Context, customerID string) (models.Account, error) {
	const query = `SELECT account_number, customer_id, account_name, account_type, balance, created_at
		FROM accounts WHERE customer_id = $1`

	var a models.Account
	err := p.db.QueryRowContext(ctx, query, customerID).Scan(
		&a.AccountNumber, &a.CustomerID, &a.AccountName, &a.AccountType, &a.Balance, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Account{}, models.ErrNoAccount
	}
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

func (p *PostgresStore) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	const query = `SELECT balance FROM accounts WHERE account_number = $1`

	var balance decimal.Decimal
	err := p.db.QueryRowContext(ctx, query, accountNumber).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ApplyDeposit upserts the balance row and inserts the record in a single
// transaction: either both are visible or neither is.
func (p *PostgresStore) ApplyDeposit(ctx context.Context, record models.TransactionRecord) (decimal.Decimal, error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const upsert = `INSERT INTO accounts (account_number, customer_id, balance, created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (account_number) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
		RETURNING balance`

	var balance decimal.Decimal
	err = dbTx.QueryRowContext(ctx, upsert,
		record.AccountNumber, record.CustomerID, record.Amount, record.CreatedAt).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}

	const insert = `INSERT INTO transactions
		(id, batch_id, customer_id, account_number, amount, previous_balance, new_balance, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err = dbTx.ExecContext(ctx, insert,
		record.ID, record.BatchID, record.CustomerID, record.AccountNumber,
		record.Amount, record.PreviousBalance, record.NewBalance, record.Status, record.CreatedAt)
	if err != nil {
		return decimal.Zero, err
	}

	if err = dbTx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (p *PostgresStore) ListByCustomer(ctx context.Context, customerID string) ([]models.TransactionRecord, error) {
	const query = `SELECT id, batch_id, customer_id, account_number, amount, previous_balance, new_balance, status, created_at
		FROM transactions WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (p *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.TransactionRecord, error) {
	const query = `SELECT id, batch_id, customer_id, account_number, amount, previous_balance, new_balance, status, created_at
		FROM transactions ORDER BY created_at DESC LIMIT $1`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (p *PostgresStore) ListSince(ctx context.Context, since time.Time) ([]models.TransactionRecord, error) {
	const query = `SELECT id, batch_id, customer_id, account_number, amount, previous_balance, new_balance, status, created_at
		FROM transactions WHERE created_at >= $1 ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	for rows.Next() {
		var r models.TransactionRecord
		if err := rows.Scan(
			&r.ID, &r.BatchID, &r.CustomerID, &r.AccountNumber,
			&r.Amount, &r.PreviousBalance, &r.NewBalance, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

var _ interfaces.Store = (*PostgresStore)(nil)
