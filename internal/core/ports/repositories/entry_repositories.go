package repositories

import (
	"context"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// EntryFilter narrows entry listings. Zero values mean "no bound".
type EntryFilter struct {
	From             time.Time
	To               time.Time
	IncludeReversals bool
	Limit            int
	Offset           int
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves one entry with its lines.
	FindEntryByID(ctx context.Context, bookID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries for a book ordered by (date, entry id),
	// the same key the ledger builder sorts by.
	ListEntries(ctx context.Context, bookID string, filter EntryFilter) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus updates the status of an entry (e.g. on reversal).
	UpdateEntryStatus(ctx context.Context, bookID string, entryID string, status domain.EntryStatus, updatedBy string, now time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
