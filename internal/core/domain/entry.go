package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines.
type JournalEntry struct {
	EntryID   string      `json:"entryID"`   // Primary Key (UUID)
	BookID    string      `json:"bookID"`    // FK -> books.book_id (Not Null)
	EntryDate time.Time   `json:"entryDate"` // Date the event occurred
	Memo      string      `json:"memo"`      // Nullable user description
	Status    EntryStatus `json:"status"`    // Default: Posted
	Lines     []EntryLine `json:"lines"`     // Ordered; at least 2 for a valid entry
	AuditFields
}

// EntryLine represents one account's movement within a JournalEntry.
// Exactly one of Debit/Credit is positive for a well-formed line; the
// write boundary enforces this before the line reaches the engine.
type EntryLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry.entryID (Not Null)
	AccountID   string          `json:"accountID"`   // FK -> Account.accountID (Not Null)
	Debit       decimal.Decimal `json:"debit"`       // >= 0
	Credit      decimal.Decimal `json:"credit"`      // >= 0
	Description string          `json:"description"` // Nullable
	AuditFields
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}
