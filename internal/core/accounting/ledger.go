package accounting

import (
	"sort"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta applies the normal-side convention to one debit/credit pair:
// a Debit-normal account grows by (debit - credit), a Credit-normal account
// by (credit - debit).
func SignedDelta(normalSide domain.EntrySide, debit, credit decimal.Decimal) decimal.Decimal {
	if normalSide == domain.Debit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// normalSideOf falls back to the kind default when an account was stored
// without an explicit normal side.
func normalSideOf(acc domain.Account) domain.EntrySide {
	if acc.NormalSide == domain.Debit || acc.NormalSide == domain.Credit {
		return acc.NormalSide
	}
	return domain.NormalSideFor(acc.Kind)
}

// movementLess is the global movement ordering contract: date ascending,
// then entry ID, then line order within the entry. Running balances and any
// cross-account merge (see ConsolidatedMovements) use this same key.
func movementLess(a, b domain.Movement) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.EntryID != b.EntryID {
		return a.EntryID < b.EntryID
	}
	return a.LineOrder < b.LineOrder
}

func sortMovements(movements []domain.Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movementLess(movements[i], movements[j])
	})
}

// ComputeLedger projects a flat entry list onto per-account movement
// streams with running balances. It is a pure function of its inputs and
// rebuilds everything from scratch on each call; callers recompute instead
// of mutating the result.
//
// Lines referencing accounts outside the snapshot are skipped: a dangling
// reference degrades the view, it does not crash it. Accounts without any
// movement get no ledger record.
func ComputeLedger(entries []domain.JournalEntry, accounts []domain.Account) map[string]*domain.LedgerAccount {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		if _, exists := byID[acc.AccountID]; !exists {
			byID[acc.AccountID] = acc
		}
	}

	ledger := make(map[string]*domain.LedgerAccount)
	for _, entry := range entries {
		for order, line := range entry.Lines {
			if _, known := byID[line.AccountID]; !known {
				continue
			}
			la, ok := ledger[line.AccountID]
			if !ok {
				la = &domain.LedgerAccount{AccountID: line.AccountID}
				ledger[line.AccountID] = la
			}
			la.Movements = append(la.Movements, domain.Movement{
				Date:      entry.EntryDate,
				EntryID:   entry.EntryID,
				LineOrder: order,
				Debit:     line.Debit,
				Credit:    line.Credit,
				Memo:      entry.Memo,
			})
		}
	}

	for accountID, la := range ledger {
		sortMovements(la.Movements)
		normalSide := normalSideOf(byID[accountID])
		running := decimal.Zero
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for i := range la.Movements {
			m := &la.Movements[i]
			running = running.Add(SignedDelta(normalSide, m.Debit, m.Credit))
			m.RunningBalance = running
			totalDebit = totalDebit.Add(m.Debit)
			totalCredit = totalCredit.Add(m.Credit)
		}
		la.TotalDebit = totalDebit
		la.TotalCredit = totalCredit
		la.Balance = running
	}

	return ledger
}

// DirectTotals extracts the per-account debit/credit pairs from a computed
// ledger, the input shape the rollup engine works from.
func DirectTotals(ledger map[string]*domain.LedgerAccount) map[string]domain.DirectTotals {
	totals := make(map[string]domain.DirectTotals, len(ledger))
	for accountID, la := range ledger {
		totals[accountID] = domain.DirectTotals{Debit: la.TotalDebit, Credit: la.TotalCredit}
	}
	return totals
}

// TrialBalance flattens a ledger into rows ordered by account code. Only
// accounts with movements appear; header accounts never do, because no
// line may target them.
func TrialBalance(ledger map[string]*domain.LedgerAccount, accounts []domain.Account) []domain.TrialBalanceRow {
	rows := make([]domain.TrialBalanceRow, 0, len(ledger))
	for _, acc := range accounts {
		la, ok := ledger[acc.AccountID]
		if !ok {
			continue
		}
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			Kind:        acc.Kind,
			Debit:       la.TotalDebit,
			Credit:      la.TotalCredit,
			Balance:     la.Balance,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].AccountID < rows[j].AccountID
	})
	return rows
}
