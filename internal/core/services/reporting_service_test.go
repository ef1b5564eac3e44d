package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/contalibre/contalibre_backend/internal/adapters/database/memory"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/core/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store     *memory.Store
	entrySvc  portssvc.EntrySvcFacade
	reporting portssvc.ReportingService

	bookID      string
	activoID    string // header "1"
	corrienteID string // header "1.1"
	cashID      string // "1.1.01"
	capitalID   string // "3.1.01"
	salesID     string // "4.1.01"
	rentID      string // "5.1.01" expense, grouped admin_expense
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	provider := suite.store.Provider()
	suite.entrySvc = services.NewEntryService(provider.EntryRepo, provider.AccountRepo)
	suite.reporting = services.NewReportingService(provider.AccountRepo, provider.EntryRepo)

	suite.bookID = uuid.NewString()
	suite.activoID = suite.seed("1", "Activo", domain.Asset, true, "")
	suite.corrienteID = suite.seed("1.1", "Activo Corriente", domain.Asset, true, "current_asset")
	suite.cashID = suite.seed("1.1.01", "Caja", domain.Asset, false, "current_asset")
	suite.capitalID = suite.seed("3.1.01", "Capital", domain.Equity, false, "equity")
	suite.salesID = suite.seed("4.1.01", "Ventas", domain.Income, false, "sales")
	suite.rentID = suite.seed("5.1.01", "Alquileres", domain.Expense, false, "admin_expense")
}

func (suite *ReportingServiceTestSuite) seed(code, name string, kind domain.AccountKind, isHeader bool, group string) string {
	id := uuid.NewString()
	err := suite.store.SaveAccount(context.Background(), domain.Account{
		AccountID:      id,
		BookID:         suite.bookID,
		Code:           code,
		Name:           name,
		Kind:           kind,
		NormalSide:     domain.NormalSideFor(kind),
		IsHeader:       isHeader,
		StatementGroup: group,
		IsActive:       true,
	})
	suite.Require().NoError(err)
	return id
}

func (suite *ReportingServiceTestSuite) post(date, debitAccount, creditAccount, amount string) *domain.JournalEntry {
	entry, err := suite.entrySvc.CreateEntry(context.Background(), suite.bookID, dto.CreateEntryRequest{
		Date: date,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: debitAccount, Debit: decimal.RequireFromString(amount)},
			{AccountID: creditAccount, Credit: decimal.RequireFromString(amount)},
		},
	}, "tester")
	suite.Require().NoError(err)
	return entry
}

func (suite *ReportingServiceTestSuite) TestLedger_RunningBalance() {
	suite.post("2026-01-10", suite.cashID, suite.capitalID, "1000.00")
	suite.post("2026-01-20", suite.cashID, suite.salesID, "500.00")
	suite.post("2026-01-25", suite.rentID, suite.cashID, "300.00")

	account, ledger, err := suite.reporting.Ledger(context.Background(), suite.bookID, suite.cashID, time.Time{})

	suite.Require().NoError(err)
	suite.Equal("1.1.01", account.Code)
	suite.Require().Len(ledger.Movements, 3)
	suite.True(ledger.Movements[0].RunningBalance.Equal(decimal.RequireFromString("1000.00")))
	suite.True(ledger.Movements[1].RunningBalance.Equal(decimal.RequireFromString("1500.00")))
	suite.True(ledger.Movements[2].RunningBalance.Equal(decimal.RequireFromString("1200.00")))
	suite.True(ledger.Balance.Equal(decimal.RequireFromString("1200.00")))
}

func (suite *ReportingServiceTestSuite) TestLedger_NoMovementsIsEmptyNotError() {
	_, ledger, err := suite.reporting.Ledger(context.Background(), suite.bookID, suite.cashID, time.Time{})

	suite.Require().NoError(err)
	suite.Empty(ledger.Movements)
	suite.True(ledger.Balance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balances() {
	suite.post("2026-01-10", suite.cashID, suite.capitalID, "1000.00")
	suite.post("2026-01-20", suite.cashID, suite.salesID, "500.00")

	rows, err := suite.reporting.TrialBalance(context.Background(), suite.bookID, time.Time{})

	suite.Require().NoError(err)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	suite.True(totalDebit.Equal(totalCredit), "trial balance must balance: %s vs %s", totalDebit, totalCredit)
}

func (suite *ReportingServiceTestSuite) TestRollup_AncestorsAbsorbDescendantTotals() {
	suite.post("2026-01-10", suite.cashID, suite.capitalID, "750.00")

	totals, cycleIDs, err := suite.reporting.Rollup(context.Background(), suite.bookID, time.Time{})

	suite.Require().NoError(err)
	suite.Empty(cycleIDs)

	byID := make(map[string]domain.RollupTotals, len(totals))
	for _, t := range totals {
		byID[t.AccountID] = t
	}
	// The posting hit 1.1.01; both "1.1" and "1" absorb it.
	suite.True(byID[suite.cashID].TotalDebit.Equal(decimal.RequireFromString("750.00")))
	suite.True(byID[suite.corrienteID].TotalDebit.Equal(decimal.RequireFromString("750.00")))
	suite.True(byID[suite.activoID].TotalDebit.Equal(decimal.RequireFromString("750.00")))
	suite.True(byID[suite.capitalID].TotalCredit.Equal(decimal.RequireFromString("750.00")))
	suite.True(byID[suite.corrienteID].HasDescendantMovements)
	suite.False(byID[suite.corrienteID].HasDirectMovements)
}

func (suite *ReportingServiceTestSuite) TestConsolidatedLedger_AnnotatesDescendantMovements() {
	suite.post("2026-01-10", suite.cashID, suite.capitalID, "200.00")

	account, movements, err := suite.reporting.ConsolidatedLedger(context.Background(), suite.bookID, suite.corrienteID, time.Time{})

	suite.Require().NoError(err)
	suite.Equal("1.1", account.Code)
	suite.Require().Len(movements, 1)
	suite.Equal(suite.cashID, movements[0].SourceAccountID, "movements merged from descendants carry their source account")
}

func (suite *ReportingServiceTestSuite) TestStatements_NetIncomeAndBalance() {
	suite.post("2026-01-10", suite.cashID, suite.capitalID, "1000.00")
	suite.post("2026-01-20", suite.cashID, suite.salesID, "500.00")
	suite.post("2026-01-25", suite.rentID, suite.cashID, "60.00")

	stmts, err := suite.reporting.Statements(context.Background(), suite.bookID, portssvc.StatementsParams{})

	suite.Require().NoError(err)
	suite.True(stmts.IncomeStatement.NetIncome.Equal(decimal.RequireFromString("440.00")),
		"net income should be 500 - 60, got %s", stmts.IncomeStatement.NetIncome)
	// Before closing, the unposted period result is exactly the gap
	// between assets and liabilities+equity. Reported, never fatal.
	suite.False(stmts.BalanceSheet.IsBalanced)
	suite.True(stmts.BalanceSheet.Diff.Equal(stmts.IncomeStatement.NetIncome),
		"diff %s should equal the unclosed result %s", stmts.BalanceSheet.Diff, stmts.IncomeStatement.NetIncome)
}

func (suite *ReportingServiceTestSuite) TestStatements_ClosingEntriesExcludedFromIncome() {
	suite.post("2026-01-20", suite.cashID, suite.salesID, "500.00")
	// Period close: transfer the result into capital.
	suite.post("2026-12-31", suite.salesID, suite.capitalID, "500.00")

	withClosing, err := suite.reporting.Statements(context.Background(), suite.bookID, portssvc.StatementsParams{})
	suite.Require().NoError(err)
	suite.True(withClosing.IncomeStatement.NetIncome.IsZero(),
		"closing wipes the income statement when included")

	withoutClosing, err := suite.reporting.Statements(context.Background(), suite.bookID, portssvc.StatementsParams{
		ExcludeClosingEntries: true,
	})
	suite.Require().NoError(err)
	suite.True(withoutClosing.IncomeStatement.NetIncome.Equal(decimal.RequireFromString("500.00")),
		"excluding closing entries restores the period result, got %s", withoutClosing.IncomeStatement.NetIncome)
}

func (suite *ReportingServiceTestSuite) TestStatements_AsOfCutoff() {
	suite.post("2026-01-20", suite.cashID, suite.salesID, "500.00")
	suite.post("2026-06-20", suite.cashID, suite.salesID, "250.00")

	asOf, _ := time.Parse("2006-01-02", "2026-03-31")
	stmts, err := suite.reporting.Statements(context.Background(), suite.bookID, portssvc.StatementsParams{AsOf: asOf})

	suite.Require().NoError(err)
	suite.True(stmts.IncomeStatement.NetIncome.Equal(decimal.RequireFromString("500.00")),
		"entries after the cutoff must not count, got %s", stmts.IncomeStatement.NetIncome)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
