package dto

import (
	"fmt"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a journal entry being created.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description" binding:"max=500"`
}

// CreateEntryRequest defines the expected JSON body for creating a journal entry.
type CreateEntryRequest struct {
	Date  string                   `json:"date" binding:"required,datetime=2006-01-02"`
	Memo  string                   `json:"memo" binding:"max=500"`
	Lines []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// Validate enforces line-level rules that binding tags cannot express:
// amounts are non-negative and exactly one side of each line is positive.
// The engine's validator assumes this has already happened.
func (r CreateEntryRequest) Validate() error {
	for i, line := range r.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: amounts must not be negative", i+1)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet && creditSet {
			return fmt.Errorf("line %d: a line cannot carry both a debit and a credit", i+1)
		}
		if !debitSet && !creditSet {
			return fmt.Errorf("line %d: a line needs a debit or a credit amount", i+1)
		}
	}
	return nil
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID   string              `json:"entryID"`
	BookID    string              `json:"bookID"`
	Date      string              `json:"date"`
	Memo      string              `json:"memo,omitempty"`
	Status    domain.EntryStatus  `json:"status"`
	Lines     []EntryLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ListEntriesParams captures query parameters for listing entries.
type ListEntriesParams struct {
	From             string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To               string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	IncludeReversals bool   `form:"includeReversals"`
	Limit            int    `form:"limit,default=100" binding:"omitempty,min=1,max=1000"`
	Offset           int    `form:"offset" binding:"omitempty,min=0"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ValidationErrorResponse carries the validator's verdict back to the caller
// when an entry is refused at the write boundary.
type ValidationErrorResponse struct {
	Errors []string        `json:"errors"`
	Diff   decimal.Decimal `json:"diff"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
	}
	return EntryResponse{
		EntryID:   e.EntryID,
		BookID:    e.BookID,
		Date:      e.EntryDate.Format("2006-01-02"),
		Memo:      e.Memo,
		Status:    e.Status,
		Lines:     lines,
		CreatedAt: e.CreatedAt,
	}
}

// ToListEntriesResponse converts a slice of domain.JournalEntry to ListEntriesResponse.
func ToListEntriesResponse(entries []domain.JournalEntry) ListEntriesResponse {
	out := ListEntriesResponse{Entries: make([]EntryResponse, len(entries))}
	for i := range entries {
		out.Entries[i] = ToEntryResponse(&entries[i])
	}
	return out
}
