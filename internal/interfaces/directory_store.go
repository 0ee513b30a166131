package interfaces

import (
	"context"

	"github.com/afrifa-micro/banking-core/internal/models"
)

// DirectoryStore persists customers and their accounts.
type DirectoryStore interface {
	SaveCustomer(ctx context.Context, customer models.Customer) error
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	// SearchCustomers matches query as a case-insensitive substring of the
	// customer's name, phone or id. An empty query matches everyone.
	SearchCustomers(ctx context.Context, query string) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int, error)

	SaveAccount(ctx context.Context, account models.Account) error
	// AccountByCustomer returns models.ErrNoAccount when none has been opened.
	AccountByCustomer(ctx context.Context, customerID string) (models.Account, error)
}
