package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
)

// reportingService implements the ReportingService interface. It owns no
// state: every call loads the current snapshot and recomputes the derived
// views from scratch through the accounting engine.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.EntryReader) portssvc.ReportingService {
	return &reportingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// loadSnapshot fetches the chart and the entries up to asOf. Reversed
// originals stay in: their mirror entries cancel them arithmetically.
func (s *reportingService) loadSnapshot(ctx context.Context, bookID string, asOf time.Time) ([]domain.Account, []domain.JournalEntry, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, bookID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	entries, err := s.entryRepo.ListEntries(ctx, bookID, portsrepo.EntryFilter{
		To:               asOf,
		IncludeReversals: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return accounts, entries, nil
}

func (s *reportingService) Ledger(ctx context.Context, bookID string, accountID string, asOf time.Time) (*domain.Account, *domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, bookID, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	accounts, entries, err := s.loadSnapshot(ctx, bookID, asOf)
	if err != nil {
		return nil, nil, err
	}

	ledger := accounting.ComputeLedger(entries, accounts)
	la, ok := ledger[accountID]
	if !ok {
		la = &domain.LedgerAccount{AccountID: accountID}
	}
	return account, la, nil
}

func (s *reportingService) ConsolidatedLedger(ctx context.Context, bookID string, accountID string, asOf time.Time) (*domain.Account, []domain.Movement, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, bookID, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	accounts, entries, err := s.loadSnapshot(ctx, bookID, asOf)
	if err != nil {
		return nil, nil, err
	}

	hierarchy := accounting.BuildHierarchy(accounts)
	ledger := accounting.ComputeLedger(entries, accounts)
	movements := accounting.ConsolidatedMovements(accountID, ledger, hierarchy, accounts)

	s.LogInfo(ctx, "Consolidated ledger computed",
		slog.String("account_id", accountID),
		slog.Int("movement_count", len(movements)))
	return account, movements, nil
}

func (s *reportingService) Rollup(ctx context.Context, bookID string, asOf time.Time) ([]domain.RollupTotals, []string, error) {
	accounts, entries, err := s.loadSnapshot(ctx, bookID, asOf)
	if err != nil {
		return nil, nil, err
	}

	hierarchy := accounting.BuildHierarchy(accounts)
	if hierarchy.HasCycle() {
		s.LogError(ctx, fmt.Errorf("account hierarchy contains cycles"), "Data integrity problem in chart of accounts",
			slog.String("book_id", bookID),
			slog.Any("cycle_account_ids", hierarchy.CycleAccountIDs))
	}

	ledger := accounting.ComputeLedger(entries, accounts)
	rollup := accounting.ComputeRollup(accounts, accounting.DirectTotals(ledger), hierarchy)

	// Stable output: chart order.
	totals := make([]domain.RollupTotals, 0, len(accounts))
	for _, acc := range accounts {
		totals = append(totals, rollup[acc.AccountID])
	}
	return totals, hierarchy.CycleAccountIDs, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, bookID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	accounts, entries, err := s.loadSnapshot(ctx, bookID, asOf)
	if err != nil {
		return nil, err
	}

	ledger := accounting.ComputeLedger(entries, accounts)
	rows := accounting.TrialBalance(ledger, accounts)

	s.LogInfo(ctx, "Trial balance computed",
		slog.String("book_id", bookID),
		slog.String("as_of", asOf.Format(dateLayout)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

func (s *reportingService) Statements(ctx context.Context, bookID string, params portssvc.StatementsParams) (*domain.Statements, error) {
	accounts, entries, err := s.loadSnapshot(ctx, bookID, params.AsOf)
	if err != nil {
		return nil, err
	}

	opts := accounting.StatementOptions{
		IsCurrent: isCurrentPredicate(params.NonCurrentGroups),
	}

	ledger := accounting.ComputeLedger(entries, accounts)
	if params.ExcludeClosingEntries {
		filtered := accounting.FilterClosingEntries(entries, accounts)
		if len(filtered) != len(entries) {
			opts.IncomeLedger = accounting.ComputeLedger(filtered, accounts)
			s.LogInfo(ctx, "Closing entries excluded from income statement",
				slog.Int("excluded_count", len(entries)-len(filtered)))
		}
	}

	stmts := accounting.ComputeStatements(ledger, accounts, opts)
	if !stmts.BalanceSheet.IsBalanced {
		s.LogInfo(ctx, "Balance sheet does not balance",
			slog.String("book_id", bookID),
			slog.String("diff", stmts.BalanceSheet.Diff.String()))
	}
	return &stmts, nil
}

// isCurrentPredicate builds the current/non-current split for accounts that
// carry no explicit statement group.
func isCurrentPredicate(nonCurrentGroups []string) func(domain.Account) bool {
	if len(nonCurrentGroups) == 0 {
		return nil
	}
	lookup := make(map[string]bool, len(nonCurrentGroups))
	for _, group := range nonCurrentGroups {
		lookup[group] = true
	}
	return func(acc domain.Account) bool {
		return !lookup[acc.StatementGroup]
	}
}
