package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// EntryValidationError carries the validator's full verdict across the
// service boundary so the transport layer can report every violation.
type EntryValidationError struct {
	Result accounting.ValidationResult
}

func (e *EntryValidationError) Error() string {
	return fmt.Sprintf("entry validation failed: %s", strings.Join(e.Result.Errors, "; "))
}

// Unwrap lets errors.Is match apperrors.ErrValidation.
func (e *EntryValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// entryService implements the EntrySvcFacade interface. It is the write
// boundary for journal entries: nothing that fails validation is persisted.
type entryService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// Ensure entryService implements the EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) CreateEntry(ctx context.Context, bookID string, req dto.CreateEntryRequest, creator string) (*domain.JournalEntry, error) {
	entryDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid entry date %q: %w", req.Date, apperrors.ErrValidation)
	}

	// Referential checks: every line must target a postable, active account
	// in this book before the accounting invariants are even worth checking.
	accountIDs := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, bookID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for entry: %w", err)
	}
	for _, line := range req.Lines {
		acc, found := accounts[line.AccountID]
		if !found {
			return nil, fmt.Errorf("account %s not found in book: %w", line.AccountID, apperrors.ErrNotFound)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("account %s is inactive: %w", acc.Code, apperrors.ErrValidation)
		}
		if !acc.Postable() {
			return nil, fmt.Errorf("account %s is a header account and cannot receive entry lines: %w", acc.Code, apperrors.ErrForbidden)
		}
	}

	now := time.Now()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:   entryID,
		BookID:    bookID,
		EntryDate: entryDate,
		Memo:      req.Memo,
		Status:    domain.Posted,
		Lines:     make([]domain.EntryLine, len(req.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}
	for i, line := range req.Lines {
		entry.Lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			AuditFields: entry.AuditFields,
		}
	}

	if result := accounting.ValidateEntry(entry); !result.OK {
		s.LogInfo(ctx, "Entry rejected by validator",
			slog.String("book_id", bookID),
			slog.Any("errors", result.Errors),
			slog.String("diff", result.Diff.String()))
		return nil, &EntryValidationError{Result: result}
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("book_id", bookID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

func (s *entryService) ReverseEntry(ctx context.Context, bookID string, entryID string, requester string) (*domain.JournalEntry, error) {
	original, err := s.entryRepo.FindEntryByID(ctx, bookID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("entry %s is already reversed: %w", entryID, apperrors.ErrValidation)
	}

	now := time.Now()
	reversalID := uuid.NewString()
	reversal := domain.JournalEntry{
		EntryID:   reversalID,
		BookID:    bookID,
		EntryDate: now,
		Memo:      fmt.Sprintf("Reversal of entry %s", original.EntryID),
		Status:    domain.Posted,
		Lines:     make([]domain.EntryLine, len(original.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester,
			LastUpdatedAt: now,
			LastUpdatedBy: requester,
		},
	}
	for i, line := range original.Lines {
		reversal.Lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   line.AccountID,
			Debit:       line.Credit, // sides swapped
			Credit:      line.Debit,
			Description: line.Description,
			AuditFields: reversal.AuditFields,
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, reversal); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}
	if err := s.entryRepo.UpdateEntryStatus(ctx, bookID, entryID, domain.Reversed, requester, now); err != nil {
		s.LogError(ctx, err, "Failed to mark entry reversed", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to mark entry %s reversed: %w", entryID, err)
	}

	s.LogInfo(ctx, "Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversalID))
	return &reversal, nil
}

func (s *entryService) GetEntryByID(ctx context.Context, bookID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, bookID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, bookID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	filter := portsrepo.EntryFilter{
		IncludeReversals: params.IncludeReversals,
		Limit:            params.Limit,
		Offset:           params.Offset,
	}
	if params.From != "" {
		from, err := time.Parse(dateLayout, params.From)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q: %w", params.From, apperrors.ErrValidation)
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := time.Parse(dateLayout, params.To)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q: %w", params.To, apperrors.ErrValidation)
		}
		filter.To = to
	}

	entries, err := s.entryRepo.ListEntries(ctx, bookID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("book_id", bookID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
