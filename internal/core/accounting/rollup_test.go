package accounting_test

import (
	"testing"

	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerAccount(id, code string, kind domain.AccountKind) domain.Account {
	acc := testAccount(id, code, kind)
	acc.IsHeader = true
	return acc
}

func TestComputeRollupThreeLevels(t *testing.T) {
	accounts := []domain.Account{
		headerAccount("h1", "1", domain.Asset),
		headerAccount("h11", "1.1", domain.Asset),
		testAccount("leaf", "1.1.01", domain.Asset),
	}
	h := accounting.BuildHierarchy(accounts)
	directTotals := map[string]domain.DirectTotals{
		"leaf": {Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	}

	rollup := accounting.ComputeRollup(accounts, directTotals, h)

	for _, id := range []string{"h1", "h11", "leaf"} {
		assert.True(t, rollup[id].TotalDebit.Equal(decimal.NewFromInt(500)), "rollup(%s).TotalDebit", id)
		assert.True(t, rollup[id].Balance.Equal(decimal.NewFromInt(500)), "rollup(%s).Balance", id)
	}
	assert.False(t, rollup["h1"].HasDirectMovements)
	assert.True(t, rollup["h1"].HasDescendantMovements)
	assert.True(t, rollup["leaf"].HasDirectMovements)
	assert.False(t, rollup["leaf"].HasDescendantMovements)
}

func TestComputeRollupAdditivityAcrossSubtree(t *testing.T) {
	accounts := []domain.Account{
		headerAccount("h1", "1", domain.Asset),
		testAccount("a", "1.01", domain.Asset),
		headerAccount("h12", "1.2", domain.Asset),
		testAccount("b", "1.2.01", domain.Asset),
		testAccount("c", "1.2.02", domain.Asset),
	}
	h := accounting.BuildHierarchy(accounts)
	directTotals := map[string]domain.DirectTotals{
		"a": {Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(10)},
		"b": {Debit: decimal.NewFromInt(200), Credit: decimal.NewFromInt(20)},
		"c": {Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(30)},
	}

	rollup := accounting.ComputeRollup(accounts, directTotals, h)

	assert.True(t, rollup["h12"].TotalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, rollup["h12"].TotalCredit.Equal(decimal.NewFromInt(50)))
	assert.True(t, rollup["h1"].TotalDebit.Equal(decimal.NewFromInt(600)))
	assert.True(t, rollup["h1"].TotalCredit.Equal(decimal.NewFromInt(60)))
	assert.True(t, rollup["h1"].Balance.Equal(decimal.NewFromInt(540)))
}

func TestComputeRollupCreditNormalBalance(t *testing.T) {
	accounts := []domain.Account{
		headerAccount("h2", "2", domain.Liability),
		testAccount("loan", "2.01", domain.Liability),
	}
	h := accounting.BuildHierarchy(accounts)
	directTotals := map[string]domain.DirectTotals{
		"loan": {Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(400)},
	}

	rollup := accounting.ComputeRollup(accounts, directTotals, h)

	assert.True(t, rollup["h2"].Balance.Equal(decimal.NewFromInt(300)), "credit-normal balance is credit minus debit")
}

func TestConsolidatedMovementsMergeAndAnnotate(t *testing.T) {
	accounts := []domain.Account{
		headerAccount("h1", "1", domain.Asset),
		testAccount("cash", "1.01", domain.Asset),
		testAccount("bank", "1.02", domain.Asset),
		testAccount("301", "3.01", domain.Equity),
	}
	h := accounting.BuildHierarchy(accounts)
	entries := []domain.JournalEntry{
		entry("e2", "2024-02-01", debitLine("bank", 200), creditLine("301", 200)),
		entry("e1", "2024-01-01", debitLine("cash", 100), creditLine("301", 100)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	merged := accounting.ConsolidatedMovements("h1", ledger, h, accounts)

	require.Len(t, merged, 2)
	assert.Equal(t, "e1", merged[0].EntryID, "merged stream re-sorted by the global key")
	assert.Equal(t, "cash", merged[0].SourceAccountID)
	assert.Equal(t, "bank", merged[1].SourceAccountID)
	assert.True(t, merged[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, merged[1].RunningBalance.Equal(decimal.NewFromInt(300)), "running balance recomputed over the merged stream")
}

func TestConsolidatedMovementsOwnMovementsNotAnnotated(t *testing.T) {
	accounts := []domain.Account{
		testAccount("cash", "1.01", domain.Asset),
		testAccount("301", "3.01", domain.Equity),
	}
	h := accounting.BuildHierarchy(accounts)
	entries := []domain.JournalEntry{
		entry("e1", "2024-01-01", debitLine("cash", 100), creditLine("301", 100)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	merged := accounting.ConsolidatedMovements("cash", ledger, h, accounts)

	require.Len(t, merged, 1)
	assert.Empty(t, merged[0].SourceAccountID)
}

func TestComputeRollupIsIdempotent(t *testing.T) {
	accounts := []domain.Account{
		headerAccount("h1", "1", domain.Asset),
		testAccount("leaf", "1.01", domain.Asset),
	}
	h := accounting.BuildHierarchy(accounts)
	directTotals := map[string]domain.DirectTotals{
		"leaf": {Debit: decimal.NewFromInt(42), Credit: decimal.Zero},
	}

	first := accounting.ComputeRollup(accounts, directTotals, h)
	second := accounting.ComputeRollup(accounts, directTotals, h)

	assert.Equal(t, first, second)
}
