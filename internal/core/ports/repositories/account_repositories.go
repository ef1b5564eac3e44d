package repositories

import (
	"context"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, bookID string, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, bookID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts for a book, in
	// stable creation order. The engine derives the hierarchy from this
	// snapshot, so ordering determines duplicate-code tie-breaks.
	ListAccounts(ctx context.Context, bookID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of accounts (e.g. the seeded default chart).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, bookID string, accountID string, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
