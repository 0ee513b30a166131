package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/models"
)

// DefaultAccountType is used when an account is opened without an explicit
// type, including accounts auto-opened by the batch processor.
const DefaultAccountType = "Savings"

// Directory manages customer and account records. The batch processor only
// reads from it, except for the documented auto-open on first deposit.
type Directory struct {
	store interfaces.DirectoryStore
	log   zerolog.Logger
}

func NewDirectory(store interfaces.DirectoryStore, log zerolog.Logger) *Directory {
	return &Directory{store: store, log: log}
}

// RegisterCustomer validates and persists a new customer. When no id is
// supplied one is generated in the CUS001 sequence.
func (d *Directory) RegisterCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	for field, value := range map[string]string{
		"first_name":     customer.FirstName,
		"last_name":      customer.LastName,
		"gender":         customer.Gender,
		"date_of_birth":  customer.DateOfBirth,
		"citizenship":    customer.Citizenship,
		"marital_status": customer.MaritalStatus,
		"hometown":       customer.Hometown,
	} {
		if value == "" {
			return models.Customer{}, fmt.Errorf("%w: %s", models.ErrMissingField, field)
		}
	}

	if customer.ID == "" {
		count, err := d.store.CountCustomers(ctx)
		if err != nil {
			return models.Customer{}, fmt.Errorf("count customers: %w", err)
		}
		customer.ID = fmt.Sprintf("CUS%03d", count+1)
	}

	if _, err := d.store.GetCustomer(ctx, customer.ID); err == nil {
		return models.Customer{}, models.ErrDuplicateCustomer
	} else if !errors.Is(err, models.ErrCustomerNotFound) {
		return models.Customer{}, err
	}

	customer.CreatedAt = time.Now().UTC()
	if err := d.store.SaveCustomer(ctx, customer); err != nil {
		return models.Customer{}, fmt.Errorf("save customer: %w", err)
	}

	d.log.Info().Str("customer_id", customer.ID).Msg("customer registered")
	return customer, nil
}

// OpenAccount opens the customer's account with an optional opening balance.
// The account number is derived from the customer id.
func (d *Directory) OpenAccount(ctx context.Context, customerID, accountType string, initialDeposit decimal.Decimal) (models.Account, error) {
	customer, err := d.store.GetCustomer(ctx, customerID)
	if err != nil {
		return models.Account{}, err
	}

	if _, err := d.store.AccountByCustomer(ctx, customerID); err == nil {
		return models.Account{}, models.ErrAccountExists
	} else if !errors.Is(err, models.ErrNoAccount) {
		return models.Account{}, err
	}

	if initialDeposit.Cmp(decimal.Zero) < 0 {
		return models.Account{}, models.ErrInvalidAmount
	}
	if accountType == "" {
		accountType = DefaultAccountType
	}

	account := models.Account{
		AccountNumber: models.AccountNumberFor(customerID),
		CustomerID:    customerID,
		AccountName:   customer.FullName() + " - " + accountType,
		AccountType:   accountType,
		Balance:       initialDeposit,
		CreatedAt:     time.Now().UTC(),
	}
	if err := d.store.SaveAccount(ctx, account); err != nil {
		return models.Account{}, fmt.Errorf("save account: %w", err)
	}

	d.log.Info().
		Str("customer_id", customerID).
		Str("account_number", account.AccountNumber).
		Msg("account opened")
	return account, nil
}

// SearchCustomers matches the query as a case-insensitive substring of name,
// phone or customer id, and joins each hit with its account snapshot.
func (d *Directory) SearchCustomers(ctx context.Context, query string) ([]models.CustomerAccount, error) {
	customers, err := d.store.SearchCustomers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	results := make([]models.CustomerAccount, 0, len(customers))
	for _, c := range customers {
		view := models.CustomerAccount{
			CustomerID: c.ID,
			Name:       c.FullName(),
			Phone:      c.Phone,
			Balance:    decimal.Zero,
		}
		account, err := d.store.AccountByCustomer(ctx, c.ID)
		switch {
		case err == nil:
			view.AccountNumber = account.AccountNumber
			view.AccountName = account.AccountName
			view.Balance = account.Balance
			view.HasAccount = true
		case errors.Is(err, models.ErrNoAccount):
			// listed anyway so a first deposit can open the account
		default:
			return nil, err
		}
		results = append(results, view)
	}
	return results, nil
}

// GetCustomer returns the customer record for an exact id.
func (d *Directory) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return d.store.GetCustomer(ctx, id)
}

// AccountFor returns the customer's account, or models.ErrNoAccount.
func (d *Directory) AccountFor(ctx context.Context, customerID string) (models.Account, error) {
	return d.store.AccountByCustomer(ctx, customerID)
}
