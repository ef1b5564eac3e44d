package services

import (
	"context"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/contalibre/contalibre_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, bookID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries for a book within the given filter.
	ListEntries(ctx context.Context, bookID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}

// EntryWriterSvc defines write operations for journal entries. This is the
// write boundary: entries failing validation are rejected here and never
// persisted.
type EntryWriterSvc interface {
	// CreateEntry validates and persists a new journal entry.
	CreateEntry(ctx context.Context, bookID string, req dto.CreateEntryRequest, creator string) (*domain.JournalEntry, error)

	// ReverseEntry creates the mirror entry of an existing one and marks
	// the original as reversed.
	ReverseEntry(ctx context.Context, bookID string, entryID string, requester string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all entry-related service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
