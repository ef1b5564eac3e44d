package services

import (
	"context"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// StatementsParams carries the policy knobs for statement generation.
type StatementsParams struct {
	AsOf time.Time
	// ExcludeClosingEntries removes recognized period-closing transfers
	// from the income statement input.
	ExcludeClosingEntries bool
	// NonCurrentGroups lists statement groups treated as non-current when
	// no explicit group decides; empty means everything is current.
	NonCurrentGroups []string
}

// ReportingService derives read-only views from the stored snapshot: the
// per-account ledger, hierarchical rollups, trial balance, and the
// classified financial statements. Every call recomputes from scratch; the
// results are values safe to share.
type ReportingService interface {
	// Ledger computes one account's movement stream with running balances.
	Ledger(ctx context.Context, bookID string, accountID string, asOf time.Time) (*domain.Account, *domain.LedgerAccount, error)

	// ConsolidatedLedger computes the merged movement stream of an account
	// and all its descendants.
	ConsolidatedLedger(ctx context.Context, bookID string, accountID string, asOf time.Time) (*domain.Account, []domain.Movement, error)

	// Rollup computes hierarchical totals for the full chart.
	Rollup(ctx context.Context, bookID string, asOf time.Time) ([]domain.RollupTotals, []string, error)

	// TrialBalance computes the trial balance as of a date.
	TrialBalance(ctx context.Context, bookID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// Statements computes the classified balance sheet and income statement.
	Statements(ctx context.Context, bookID string, params StatementsParams) (*domain.Statements, error)
}
