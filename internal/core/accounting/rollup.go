package accounting

import (
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeRollup aggregates each account's direct totals up through its full
// ancestor chain, so a header (rubro) account shows the consolidated totals
// of its entire subtree. One pass over the accounts adds each non-zero
// direct total to every ancestor, O(accounts x depth); no recursive descent
// per query is needed afterwards.
func ComputeRollup(accounts []domain.Account, directTotals map[string]domain.DirectTotals, hierarchy *Hierarchy) map[string]domain.RollupTotals {
	rollup := make(map[string]domain.RollupTotals, len(accounts))

	for _, acc := range accounts {
		direct := directTotals[acc.AccountID]
		rollup[acc.AccountID] = domain.RollupTotals{
			AccountID:          acc.AccountID,
			TotalDebit:         direct.Debit,
			TotalCredit:        direct.Credit,
			HasDirectMovements: !direct.Debit.IsZero() || !direct.Credit.IsZero(),
		}
	}

	for _, acc := range accounts {
		direct := directTotals[acc.AccountID]
		if direct.Debit.IsZero() && direct.Credit.IsZero() {
			continue
		}
		for _, ancestorID := range hierarchy.Ancestors(acc.AccountID) {
			agg, ok := rollup[ancestorID]
			if !ok {
				continue
			}
			agg.TotalDebit = agg.TotalDebit.Add(direct.Debit)
			agg.TotalCredit = agg.TotalCredit.Add(direct.Credit)
			agg.HasDescendantMovements = true
			rollup[ancestorID] = agg
		}
	}

	// Balance last, from the rolled-up pair, same normal-side rule as the
	// ledger builder.
	for _, acc := range accounts {
		agg := rollup[acc.AccountID]
		agg.Balance = SignedDelta(normalSideOf(acc), agg.TotalDebit, agg.TotalCredit)
		rollup[acc.AccountID] = agg
	}

	return rollup
}

// ConsolidatedMovements merges the movement streams of an account and all
// of its descendants into one view, re-sorted by the global ledger key, and
// recomputes a single running balance using the rubro account's own normal
// side. Movements that originated below the rubro are annotated with their
// source account for display.
func ConsolidatedMovements(accountID string, ledger map[string]*domain.LedgerAccount, hierarchy *Hierarchy, accounts []domain.Account) []domain.Movement {
	var rubro domain.Account
	for _, acc := range accounts {
		if acc.AccountID == accountID {
			rubro = acc
			break
		}
	}

	var merged []domain.Movement
	appendFrom := func(sourceID string) {
		la, ok := ledger[sourceID]
		if !ok {
			return
		}
		for _, m := range la.Movements {
			if sourceID != accountID {
				m.SourceAccountID = sourceID
			}
			merged = append(merged, m)
		}
	}

	appendFrom(accountID)
	for _, descendantID := range hierarchy.Descendants(accountID) {
		appendFrom(descendantID)
	}

	sortMovements(merged)

	normalSide := normalSideOf(rubro)
	running := decimal.Zero
	for i := range merged {
		running = running.Add(SignedDelta(normalSide, merged[i].Debit, merged[i].Credit))
		merged[i].RunningBalance = running
	}
	return merged
}
