package domain

import (
	"github.com/shopspring/decimal"
)

// SectionID identifies one section of a financial statement.
type SectionID string

const (
	SectionCurrentAsset        SectionID = "current_asset"
	SectionNonCurrentAsset     SectionID = "non_current_asset"
	SectionCurrentLiability    SectionID = "current_liability"
	SectionNonCurrentLiability SectionID = "non_current_liability"
	SectionEquity              SectionID = "equity"
	SectionSales               SectionID = "sales"
	SectionOtherIncome         SectionID = "other_income"
	SectionCOGS                SectionID = "cogs"
	SectionAdminExpense        SectionID = "admin_expense"
	SectionSellingExpense      SectionID = "selling_expense"
	SectionFinancial           SectionID = "financial"
	SectionOtherResult         SectionID = "other_result"
)

// SectionRow is one account's contribution to a statement section.
type SectionRow struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	IsContra  bool            `json:"isContra"`
}

// StatementSection groups the accounts assigned to one section.
// Subtotal is the raw sum of non-contra rows; NetTotal subtracts contra
// rows from it. Both conventions are fixed here and tested explicitly.
type StatementSection struct {
	ID       SectionID       `json:"id"`
	Rows     []SectionRow    `json:"rows"`
	Subtotal decimal.Decimal `json:"subtotal"`
	NetTotal decimal.Decimal `json:"netTotal"`
}

// BalanceSheet is the classified balance sheet for one book.
// An out-of-balance sheet is still fully populated; IsBalanced and Diff
// carry the warning.
type BalanceSheet struct {
	CurrentAssets             StatementSection `json:"currentAssets"`
	NonCurrentAssets          StatementSection `json:"nonCurrentAssets"`
	CurrentLiabilities        StatementSection `json:"currentLiabilities"`
	NonCurrentLiabilities     StatementSection `json:"nonCurrentLiabilities"`
	Equity                    StatementSection `json:"equity"`
	TotalAssets               decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal  `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal  `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool             `json:"isBalanced"`
	Diff                      decimal.Decimal  `json:"diff"` // Signed: assets minus liabilities+equity
}

// IncomeStatement is the classified income statement for one book.
type IncomeStatement struct {
	Sales              StatementSection `json:"sales"`
	CostOfGoodsSold    StatementSection `json:"costOfGoodsSold"`
	AdminExpenses      StatementSection `json:"adminExpenses"`
	SellingExpenses    StatementSection `json:"sellingExpenses"`
	FinancialResults   StatementSection `json:"financialResults"`
	OtherIncome        StatementSection `json:"otherIncome"`
	OtherResults       StatementSection `json:"otherResults"`
	GrossProfit        decimal.Decimal  `json:"grossProfit"`
	OperatingIncome    decimal.Decimal  `json:"operatingIncome"`
	NetFinancialResult decimal.Decimal  `json:"netFinancialResult"`
	NetOtherResult     decimal.Decimal  `json:"netOtherResult"`
	NetIncome          decimal.Decimal  `json:"netIncome"`
}

// Statements bundles the two derived financial statements.
type Statements struct {
	BalanceSheet    BalanceSheet    `json:"balanceSheet"`
	IncomeStatement IncomeStatement `json:"incomeStatement"`
}
