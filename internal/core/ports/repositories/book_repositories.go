package repositories

import (
	"context"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// BookReader defines read operations for workbook data
type BookReader interface {
	// FindBookByID retrieves a specific book by its unique identifier.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves all books, newest first.
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)
}

// BookWriter defines write operations for workbook data
type BookWriter interface {
	// SaveBook persists a new book.
	SaveBook(ctx context.Context, book domain.Book) error

	// UpdateBook updates a book's mutable fields.
	UpdateBook(ctx context.Context, book domain.Book) error
}

// BookRepositoryFacade combines all book-related repository interfaces.
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
