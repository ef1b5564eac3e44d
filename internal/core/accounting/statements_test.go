package accounting_test

import (
	"testing"

	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupedAccount(id, code string, kind domain.AccountKind, group string) domain.Account {
	acc := testAccount(id, code, kind)
	acc.StatementGroup = group
	return acc
}

func TestClassifyAccountPrecedence(t *testing.T) {
	nonCurrent := accounting.StatementOptions{IsCurrent: func(domain.Account) bool { return false }}

	tests := []struct {
		name    string
		account domain.Account
		opts    accounting.StatementOptions
		want    domain.SectionID
	}{
		{
			name:    "explicit group wins over kind",
			account: groupedAccount("a", "1.01", domain.Asset, "non_current_asset"),
			want:    domain.SectionNonCurrentAsset,
		},
		{
			name:    "kind default with current predicate",
			account: testAccount("a", "1.01", domain.Asset),
			want:    domain.SectionCurrentAsset,
		},
		{
			name:    "kind default with non-current predicate",
			account: testAccount("a", "1.01", domain.Asset),
			opts:    nonCurrent,
			want:    domain.SectionNonCurrentAsset,
		},
		{
			name:    "liability kind",
			account: testAccount("a", "2.01", domain.Liability),
			want:    domain.SectionCurrentLiability,
		},
		{
			name:    "income defaults to sales",
			account: testAccount("a", "4.01", domain.Income),
			want:    domain.SectionSales,
		},
		{
			name:    "expense defaults to admin",
			account: testAccount("a", "4.02", domain.Expense),
			want:    domain.SectionAdminExpense,
		},
		{
			name:    "expense with cogs group",
			account: groupedAccount("a", "4.02", domain.Expense, "cogs"),
			want:    domain.SectionCOGS,
		},
		{
			name:    "code prefix as last resort",
			account: domain.Account{AccountID: "a", Code: "2.05"},
			want:    domain.SectionCurrentLiability,
		},
		{
			name:    "result code prefix",
			account: domain.Account{AccountID: "a", Code: "4.10"},
			want:    domain.SectionOtherResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := accounting.ClassifyAccount(tt.account, tt.opts)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAccountUnclassifiable(t *testing.T) {
	_, ok := accounting.ClassifyAccount(domain.Account{AccountID: "a", Code: "zzz"}, accounting.StatementOptions{})
	assert.False(t, ok)
}

func TestComputeStatementsSimpleEntry(t *testing.T) {
	accounts := []domain.Account{
		testAccount("101", "1.01", domain.Asset),
		testAccount("301", "3.01", domain.Equity),
	}
	entries := []domain.JournalEntry{
		entry("e1", "2024-03-01", debitLine("101", 1000), creditLine("301", 1000)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	stmts := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{})
	bs := stmts.BalanceSheet

	assert.True(t, bs.TotalAssets.Equal(decimal.NewFromInt(1000)))
	assert.True(t, bs.TotalEquity.Equal(decimal.NewFromInt(1000)))
	assert.True(t, bs.TotalLiabilities.IsZero())
	assert.True(t, bs.TotalLiabilitiesAndEquity.Equal(decimal.NewFromInt(1000)))
	assert.True(t, bs.IsBalanced)
	assert.True(t, bs.Diff.IsZero())
}

func TestComputeStatementsContraNetting(t *testing.T) {
	machinery := testAccount("151", "1.5.01", domain.Asset)
	depreciation := testAccount("152", "1.5.02", domain.Asset)
	depreciation.IsContra = true
	depreciation.NormalSide = domain.Credit // accumulated depreciation grows on credit
	depreciation.StatementGroup = "current_asset"
	machinery.StatementGroup = "current_asset"
	capital := testAccount("301", "3.01", domain.Equity)
	accounts := []domain.Account{machinery, depreciation, capital}

	entries := []domain.JournalEntry{
		entry("e1", "2024-01-01", debitLine("151", 1000), creditLine("301", 1000)),
		entry("e2", "2024-06-30", creditLine("152", 200), debitLine("301", 200)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	stmts := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{})
	section := stmts.BalanceSheet.CurrentAssets

	assert.True(t, section.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal excludes contra members")
	assert.True(t, section.NetTotal.Equal(decimal.NewFromInt(800)), "net total subtracts contra members")
	require.Len(t, section.Rows, 2)
}

func TestComputeStatementsImbalanceIsReportedNotFatal(t *testing.T) {
	accounts := []domain.Account{
		testAccount("101", "1.01", domain.Asset),
		testAccount("301", "3.01", domain.Equity),
		testAccount("999", "x", domain.AccountKind("BOGUS")), // unclassifiable sink
	}
	accounts[2].Code = "zzz"
	entries := []domain.JournalEntry{
		// Balanced as an entry, but one side lands outside the statements.
		entry("e1", "2024-03-01", debitLine("101", 1000), creditLine("999", 1000)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	stmts := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{})
	bs := stmts.BalanceSheet

	assert.False(t, bs.IsBalanced)
	assert.True(t, bs.Diff.Equal(decimal.NewFromInt(1000)), "diff stays signed: assets minus liabilities+equity")
	assert.True(t, bs.TotalAssets.Equal(decimal.NewFromInt(1000)), "statements are still fully computed")
}

func TestComputeStatementsIncomeStatementDerivations(t *testing.T) {
	accounts := []domain.Account{
		testAccount("101", "1.01", domain.Asset),
		groupedAccount("401", "4.01", domain.Income, "sales"),
		groupedAccount("501", "5.01", domain.Expense, "cogs"),
		groupedAccount("502", "5.02", domain.Expense, "admin_expense"),
		groupedAccount("503", "5.03", domain.Expense, "selling_expense"),
		groupedAccount("601", "6.01", domain.Expense, "financial"),
		groupedAccount("602", "6.02", domain.Income, "other_income"),
	}
	entries := []domain.JournalEntry{
		entry("e1", "2024-01-05", debitLine("101", 1000), creditLine("401", 1000)),
		entry("e2", "2024-01-06", debitLine("501", 400), creditLine("101", 400)),
		entry("e3", "2024-01-07", debitLine("502", 100), creditLine("101", 100)),
		entry("e4", "2024-01-08", debitLine("503", 50), creditLine("101", 50)),
		entry("e5", "2024-01-09", debitLine("601", 30), creditLine("101", 30)),
		entry("e6", "2024-01-10", debitLine("101", 20), creditLine("602", 20)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	is := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{}).IncomeStatement

	assert.True(t, is.GrossProfit.Equal(decimal.NewFromInt(600)), "1000 sales - 400 cogs")
	assert.True(t, is.OperatingIncome.Equal(decimal.NewFromInt(450)), "600 - 100 admin - 50 selling")
	assert.True(t, is.NetFinancialResult.Equal(decimal.NewFromInt(-30)), "financial expense subtracts")
	assert.True(t, is.NetOtherResult.Equal(decimal.NewFromInt(20)))
	assert.True(t, is.NetIncome.Equal(decimal.NewFromInt(440)))
}

func TestIsClosingEntry(t *testing.T) {
	accounts := []domain.Account{
		testAccount("401", "4.01", domain.Income),
		testAccount("501", "5.01", domain.Expense),
		testAccount("301", "3.01", domain.Equity),
		testAccount("101", "1.01", domain.Asset),
	}

	closing := entry("close", "2024-12-31",
		debitLine("401", 1000), creditLine("501", 400), creditLine("301", 600))
	assert.True(t, accounting.IsClosingEntry(closing, accounts))

	ordinary := entry("sale", "2024-05-01", debitLine("101", 1000), creditLine("401", 1000))
	assert.False(t, accounting.IsClosingEntry(ordinary, accounts), "entries touching asset accounts are not closings")

	resultOnly := entry("reclass", "2024-06-01", debitLine("401", 10), creditLine("501", 10))
	assert.False(t, accounting.IsClosingEntry(resultOnly, accounts), "a closing must transfer into equity")
}

func TestComputeStatementsClosingEntryExclusion(t *testing.T) {
	accounts := []domain.Account{
		testAccount("101", "1.01", domain.Asset),
		groupedAccount("401", "4.01", domain.Income, "sales"),
		testAccount("301", "3.01", domain.Equity),
	}
	entries := []domain.JournalEntry{
		entry("e1", "2024-05-01", debitLine("101", 1000), creditLine("401", 1000)),
		// Period close: zero sales into equity.
		entry("close", "2024-12-31", debitLine("401", 1000), creditLine("301", 1000)),
	}

	ledger := accounting.ComputeLedger(entries, accounts)
	filtered := accounting.FilterClosingEntries(entries, accounts)
	require.Len(t, filtered, 1)
	incomeLedger := accounting.ComputeLedger(filtered, accounts)

	stmts := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{IncomeLedger: incomeLedger})

	assert.True(t, stmts.IncomeStatement.Sales.NetTotal.Equal(decimal.NewFromInt(1000)),
		"income statement sees pre-closing sales")
	assert.True(t, stmts.BalanceSheet.TotalEquity.Equal(decimal.NewFromInt(1000)),
		"balance sheet still reflects the closing transfer")
}

func TestComputeStatementsIsIdempotent(t *testing.T) {
	accounts := []domain.Account{
		testAccount("101", "1.01", domain.Asset),
		testAccount("301", "3.01", domain.Equity),
	}
	entries := []domain.JournalEntry{
		entry("e1", "2024-03-01", debitLine("101", 1000), creditLine("301", 1000)),
	}
	ledger := accounting.ComputeLedger(entries, accounts)

	first := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{})
	second := accounting.ComputeStatements(ledger, accounts, accounting.StatementOptions{})

	assert.Equal(t, first, second)
}
