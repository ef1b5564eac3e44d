package dto

import (
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// TrialBalanceResponse wraps the trial balance rows with report metadata.
type TrialBalanceResponse struct {
	BookID      string                   `json:"bookID"`
	AsOf        string                   `json:"asOf"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
}

// LedgerAccountResponse is one account's ledger view.
type LedgerAccountResponse struct {
	BookID  string                `json:"bookID"`
	Account AccountResponse       `json:"account"`
	Ledger  *domain.LedgerAccount `json:"ledger"`
}

// ConsolidatedLedgerResponse is the merged movement stream of a rubro and
// its descendants.
type ConsolidatedLedgerResponse struct {
	BookID    string            `json:"bookID"`
	Account   AccountResponse   `json:"account"`
	Movements []domain.Movement `json:"movements"`
}

// RollupResponse carries the hierarchical totals for a book's full chart.
type RollupResponse struct {
	BookID string                `json:"bookID"`
	Totals []domain.RollupTotals `json:"totals"`
	// CycleAccountIDs flags data-integrity problems found while walking
	// the account tree. Non-empty means the chart needs fixing.
	CycleAccountIDs []string `json:"cycleAccountIDs,omitempty"`
}

// StatementsResponse wraps the derived financial statements.
type StatementsResponse struct {
	BookID                 string            `json:"bookID"`
	AsOf                   string            `json:"asOf"`
	GeneratedAt            time.Time         `json:"generatedAt"`
	ClosingEntriesExcluded bool              `json:"closingEntriesExcluded"`
	Statements             domain.Statements `json:"statements"`
}

// ToTrialBalanceResponse assembles the trial balance report DTO.
func ToTrialBalanceResponse(bookID string, asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	return TrialBalanceResponse{
		BookID:      bookID,
		AsOf:        asOf.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
	}
}

// ToStatementsResponse assembles the financial statements report DTO.
func ToStatementsResponse(bookID string, asOf time.Time, excludeClosing bool, stmts domain.Statements) StatementsResponse {
	return StatementsResponse{
		BookID:                 bookID,
		AsOf:                   asOf.Format("2006-01-02"),
		GeneratedAt:            time.Now().UTC(),
		ClosingEntriesExcluded: excludeClosing,
		Statements:             stmts,
	}
}
