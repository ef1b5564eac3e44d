package dto

import (
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// CreateBookRequest defines the payload for creating a workbook.
type CreateBookRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,alpha"`
	Description  string `json:"description" binding:"max=500"`
	// SeedDefaultChart creates the standard chart of accounts in the new
	// book. When omitted the server-configured default applies.
	SeedDefaultChart *bool `json:"seedDefaultChart"`
}

// UpdateBookRequest defines the payload for updating a workbook.
type UpdateBookRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// BookResponse defines the data returned for a workbook.
type BookResponse struct {
	BookID       string    `json:"bookID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListBooksResponse wraps a page of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:       b.BookID,
		Name:         b.Name,
		CurrencyCode: b.CurrencyCode,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
	}
}

// ToListBooksResponse converts a slice of domain.Book to ListBooksResponse.
func ToListBooksResponse(books []domain.Book) ListBooksResponse {
	out := ListBooksResponse{Books: make([]BookResponse, len(books))}
	for i := range books {
		out.Books[i] = ToBookResponse(&books[i])
	}
	return out
}
