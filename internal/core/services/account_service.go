package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	bookRepo    portsrepo.BookReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithBookReader adds the book reader used to verify the target book exists.
func WithBookReader(repo portsrepo.BookReader) AccountServiceOption {
	return func(s *accountService) {
		s.bookRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, bookID string, req dto.CreateAccountRequest, creator string) (*domain.Account, error) {
	if s.bookRepo != nil {
		if _, err := s.bookRepo.FindBookByID(ctx, bookID); err != nil {
			return nil, fmt.Errorf("invalid book: %w", err)
		}
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, bookID, req.ParentAccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", req.ParentAccountID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if !parent.IsHeader {
			return nil, fmt.Errorf("parent account %s is not a header account: %w", parent.Code, apperrors.ErrValidation)
		}
	}

	// Duplicate codes would make hierarchy derivation ambiguous.
	existing, err := s.accountRepo.ListAccounts(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for code check: %w", err)
	}
	for _, acc := range existing {
		if acc.Code == req.Code && acc.IsActive {
			return nil, fmt.Errorf("account code %s already in use: %w", req.Code, apperrors.ErrDuplicate)
		}
	}

	normalSide := req.NormalSide
	if normalSide == "" {
		normalSide = domain.NormalSideFor(req.Kind)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		BookID:          bookID,
		Code:            req.Code,
		Name:            req.Name,
		Kind:            req.Kind,
		NormalSide:      normalSide,
		IsHeader:        req.IsHeader,
		ParentAccountID: req.ParentAccountID,
		StatementGroup:  req.StatementGroup,
		IsContra:        req.IsContra,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, bookID string, accountID string, req dto.UpdateAccountRequest, updater string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, bookID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.StatementGroup != nil {
		account.StatementGroup = *req.StatementGroup
	}
	if req.IsContra != nil {
		account.IsContra = *req.IsContra
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updater

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, bookID string, accountID string, updater string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, bookID, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, bookID, accountID, updater, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, bookID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, bookID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, bookID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("book_id", bookID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetHierarchy(ctx context.Context, bookID string) ([]domain.Account, *accounting.Hierarchy, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, bookID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	hierarchy := accounting.BuildHierarchy(accounts)
	if hierarchy.HasCycle() {
		s.LogError(ctx, apperrors.ErrValidation, "Account hierarchy contains cycles",
			slog.String("book_id", bookID),
			slog.Any("cycle_account_ids", hierarchy.CycleAccountIDs))
	}
	return accounts, hierarchy, nil
}
