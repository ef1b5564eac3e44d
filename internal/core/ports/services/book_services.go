package services

import (
	"context"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/contalibre/contalibre_backend/internal/dto"
)

// BookReaderSvc defines read operations for workbooks.
type BookReaderSvc interface {
	// GetBookByID retrieves a specific book by its ID.
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves all books.
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)
}

// BookWriterSvc defines write operations for workbooks.
type BookWriterSvc interface {
	// CreateBook persists a new book, optionally seeding the default chart
	// of accounts.
	CreateBook(ctx context.Context, req dto.CreateBookRequest, creator string) (*domain.Book, error)

	// UpdateBook updates a book's mutable fields.
	UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, updater string) (*domain.Book, error)
}

// BookSvcFacade combines all book-related service interfaces.
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
