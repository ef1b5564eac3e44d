package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new repository for workbook data.
func NewBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	query := `
		INSERT INTO books (book_id, name, currency_code, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		book.BookID,
		book.Name,
		book.CurrencyCode,
		book.Description,
		book.CreatedAt,
		book.CreatedBy,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save book %s: %w", book.BookID, err)
	}
	return nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	query := `
		UPDATE books
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE book_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		book.BookID,
		book.Name,
		book.Description,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update book %s: %w", book.BookID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *bookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `
		SELECT book_id, name, currency_code, description, created_at, created_by, last_updated_at, last_updated_by
		FROM books
		WHERE book_id = $1;
	`
	var book domain.Book
	err := r.pool.QueryRow(ctx, query, bookID).Scan(
		&book.BookID,
		&book.Name,
		&book.CurrencyCode,
		&book.Description,
		&book.CreatedAt,
		&book.CreatedBy,
		&book.LastUpdatedAt,
		&book.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %s: %w", bookID, err)
	}
	return &book, nil
}

func (r *bookRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT book_id, name, currency_code, description, created_at, created_by, last_updated_at, last_updated_by
		FROM books
		ORDER BY created_at, book_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.BookID,
			&book.Name,
			&book.CurrencyCode,
			&book.Description,
			&book.CreatedAt,
			&book.CreatedBy,
			&book.LastUpdatedAt,
			&book.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}
