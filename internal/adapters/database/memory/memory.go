// Package memory provides a mutex-guarded in-memory implementation of the
// repository ports, used for development without a database and by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
)

// Store is an in-memory implementation of the repository facades.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu       sync.RWMutex
	books    map[string]domain.Book
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	// Insertion order per book; the engine's duplicate-code tie-break
	// depends on a stable listing order.
	accountOrder map[string][]string
	bookOrder    []string
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		books:        make(map[string]domain.Book),
		accounts:     make(map[string]domain.Account),
		entries:      make(map[string]domain.JournalEntry),
		accountOrder: make(map[string][]string),
	}
}

// Provider bundles the store behind the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BookRepo:    s,
		AccountRepo: s,
		EntryRepo:   s,
	}
}

var (
	_ portsrepo.BookRepositoryFacade    = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade   = (*Store)(nil)
)

// --- Books ---

func (s *Store) SaveBook(_ context.Context, book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.books[book.BookID]; exists {
		return apperrors.ErrDuplicate
	}
	s.books[book.BookID] = book
	s.bookOrder = append(s.bookOrder, book.BookID)
	return nil
}

func (s *Store) UpdateBook(_ context.Context, book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.books[book.BookID]; !exists {
		return apperrors.ErrNotFound
	}
	s.books[book.BookID] = book
	return nil
}

func (s *Store) FindBookByID(_ context.Context, bookID string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[bookID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &book, nil
}

func (s *Store) ListBooks(_ context.Context, limit int, offset int) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Book
	for i := offset; i < len(s.bookOrder); i++ {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.books[s.bookOrder[i]])
	}
	return out, nil
}

// --- Accounts ---

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAccountLocked(account)
}

func (s *Store) SaveAccounts(_ context.Context, accounts []domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range accounts {
		if err := s.saveAccountLocked(account); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) saveAccountLocked(account domain.Account) error {
	if _, exists := s.accounts[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = account
	s.accountOrder[account.BookID] = append(s.accountOrder[account.BookID], account.AccountID)
	return nil
}

func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.accounts[account.AccountID]
	if !ok || existing.BookID != account.BookID {
		return apperrors.ErrNotFound
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) DeactivateAccount(_ context.Context, bookID string, accountID string, updatedBy string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok || account.BookID != bookID {
		return apperrors.ErrNotFound
	}
	account.IsActive = false
	account.LastUpdatedBy = updatedBy
	account.LastUpdatedAt = now
	s.accounts[accountID] = account
	return nil
}

func (s *Store) FindAccountByID(_ context.Context, bookID string, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok || account.BookID != bookID {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, bookID string, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok && account.BookID == bookID {
			out[id] = account
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(_ context.Context, bookID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.accountOrder[bookID]
	out := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.accounts[id])
	}
	return out, nil
}

// --- Entries ---

func (s *Store) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *Store) UpdateEntryStatus(_ context.Context, bookID string, entryID string, status domain.EntryStatus, updatedBy string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[entryID]
	if !ok || entry.BookID != bookID {
		return apperrors.ErrNotFound
	}
	entry.Status = status
	entry.LastUpdatedBy = updatedBy
	entry.LastUpdatedAt = now
	s.entries[entryID] = entry
	return nil
}

func (s *Store) FindEntryByID(_ context.Context, bookID string, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok || entry.BookID != bookID {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

func (s *Store) ListEntries(_ context.Context, bookID string, filter portsrepo.EntryFilter) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.JournalEntry
	for _, entry := range s.entries {
		if entry.BookID != bookID {
			continue
		}
		if !filter.IncludeReversals && entry.Status == domain.Reversed {
			continue
		}
		if !filter.From.IsZero() && entry.EntryDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && entry.EntryDate.After(filter.To) {
			continue
		}
		matched = append(matched, entry)
	}
	// Same key the ledger builder sorts by.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].EntryDate.Equal(matched[j].EntryDate) {
			return matched[i].EntryDate.Before(matched[j].EntryDate)
		}
		return matched[i].EntryID < matched[j].EntryID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}
