package services

import (
	"context"

	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/contalibre/contalibre_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, bookID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the full chart of accounts for a book.
	ListAccounts(ctx context.Context, bookID string) ([]domain.Account, error)

	// GetHierarchy builds the account tree snapshot for a book.
	GetHierarchy(ctx context.Context, bookID string) ([]domain.Account, *accounting.Hierarchy, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account after structural checks.
	CreateAccount(ctx context.Context, bookID string, req dto.CreateAccountRequest, creator string) (*domain.Account, error)

	// UpdateAccount updates an account's presentation fields.
	UpdateAccount(ctx context.Context, bookID string, accountID string, req dto.UpdateAccountRequest, updater string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, bookID string, accountID string, updater string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
