package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/google/uuid"
)

// bookService implements the BookSvcFacade interface
type bookService struct {
	BaseService
	bookRepo    portsrepo.BookRepositoryFacade
	accountRepo portsrepo.AccountWriter
}

// BookServiceOption is a functional option for configuring the book service
type BookServiceOption func(*bookService)

// WithChartSeeder provides the account writer used to seed the default
// chart of accounts into new books.
func WithChartSeeder(repo portsrepo.AccountWriter) BookServiceOption {
	return func(s *bookService) {
		s.accountRepo = repo
	}
}

// NewBookService creates a new book service with the provided options
func NewBookService(repo portsrepo.BookRepositoryFacade, options ...BookServiceOption) portssvc.BookSvcFacade {
	svc := &bookService{
		bookRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure bookService implements the BookSvcFacade interface
var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest, creator string) (*domain.Book, error) {
	now := time.Now()
	book := domain.Book{
		BookID:       uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		s.LogError(ctx, err, "Failed to save book", slog.String("book_name", req.Name))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	if req.SeedDefaultChart != nil && *req.SeedDefaultChart && s.accountRepo != nil {
		chart := DefaultChart(book.BookID, creator, now)
		if err := s.accountRepo.SaveAccounts(ctx, chart); err != nil {
			s.LogError(ctx, err, "Failed to seed default chart", slog.String("book_id", book.BookID))
			return nil, fmt.Errorf("failed to seed default chart: %w", err)
		}
		s.LogInfo(ctx, "Default chart seeded",
			slog.String("book_id", book.BookID),
			slog.Int("account_count", len(chart)))
	}

	s.LogInfo(ctx, "Book created", slog.String("book_id", book.BookID))
	return &book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, updater string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}

	if req.Name != nil {
		book.Name = *req.Name
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = updater

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		s.LogError(ctx, err, "Failed to update book", slog.String("book_id", bookID))
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	books, err := s.bookRepo.ListBooks(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list books")
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}
