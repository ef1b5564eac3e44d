package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one ledger line projected onto a single account, with the
// running balance after applying it.
type Movement struct {
	Date           time.Time       `json:"date"`
	EntryID        string          `json:"entryID"`
	LineOrder      int             `json:"lineOrder"` // Position of the line within its entry
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	// SourceAccountID is set on consolidated views when the movement
	// originated in a descendant account rather than the rubro itself.
	SourceAccountID string `json:"sourceAccountID,omitempty"`
}

// LedgerAccount is the full movement history of one account, rebuilt from
// the entry set on every computation. It is a value: consumers never
// mutate it, they recompute.
type LedgerAccount struct {
	AccountID   string          `json:"accountID"`
	Movements   []Movement      `json:"movements"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"` // Running balance after the last movement
}

// DirectTotals is the debit/credit pair an account accumulated from its own
// lines, before any hierarchy rollup.
type DirectTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// RollupTotals is an account's totals including every descendant in the
// account tree.
type RollupTotals struct {
	AccountID              string          `json:"accountID"`
	TotalDebit             decimal.Decimal `json:"totalDebit"`
	TotalCredit            decimal.Decimal `json:"totalCredit"`
	Balance                decimal.Decimal `json:"balance"`
	HasDirectMovements     bool            `json:"hasDirectMovements"`
	HasDescendantMovements bool            `json:"hasDescendantMovements"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	Kind        AccountKind     `json:"kind"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}
