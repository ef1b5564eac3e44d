package accounting

import (
	"strings"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// balanceSheetEpsilon is the tolerance for the assets = liabilities+equity
// integrity check. Wider than the per-entry epsilon because rounding
// accumulates across accounts.
var balanceSheetEpsilon = decimal.NewFromFloat(0.05)

// StatementOptions carries the caller-supplied policy knobs for statement
// computation.
type StatementOptions struct {
	// IsCurrent splits Asset/Liability accounts into current vs
	// non-current. Nil classifies everything as current.
	IsCurrent func(domain.Account) bool
	// IncomeLedger, when set, is used instead of the main ledger for the
	// income statement. The reporting service sets it to a ledger computed
	// from an entry list with closing entries filtered out, so period
	// closings do not double-count results.
	IncomeLedger map[string]*domain.LedgerAccount
}

// ClassifierRule assigns an account to a statement section, or declines.
// Rules are evaluated top-down, first match wins, which keeps the fallback
// precedence visible and testable rule by rule.
type ClassifierRule func(domain.Account) (domain.SectionID, bool)

// sectionsByGroup maps explicit statement group labels to sections. A few
// aliases cover the labels the workbook UI historically produced.
var sectionsByGroup = map[string]domain.SectionID{
	"current_asset":         domain.SectionCurrentAsset,
	"non_current_asset":     domain.SectionNonCurrentAsset,
	"current_liability":     domain.SectionCurrentLiability,
	"non_current_liability": domain.SectionNonCurrentLiability,
	"equity":                domain.SectionEquity,
	"sales":                 domain.SectionSales,
	"other_income":          domain.SectionOtherIncome,
	"cogs":                  domain.SectionCOGS,
	"cost_of_goods_sold":    domain.SectionCOGS,
	"admin_expense":         domain.SectionAdminExpense,
	"selling_expense":       domain.SectionSellingExpense,
	"financial":             domain.SectionFinancial,
	"other_result":          domain.SectionOtherResult,
}

// ByStatementGroup classifies by the account's explicit statement group.
func ByStatementGroup(acc domain.Account) (domain.SectionID, bool) {
	section, ok := sectionsByGroup[strings.ToLower(strings.TrimSpace(acc.StatementGroup))]
	return section, ok
}

// ByKind classifies by the account kind, using the caller's current vs
// non-current predicate for assets and liabilities. Income defaults to
// sales and Expense to administrative expenses; anything finer grained
// needs an explicit statement group, which takes precedence anyway.
func ByKind(isCurrent func(domain.Account) bool) ClassifierRule {
	current := func(acc domain.Account) bool {
		if isCurrent == nil {
			return true
		}
		return isCurrent(acc)
	}
	return func(acc domain.Account) (domain.SectionID, bool) {
		switch acc.Kind {
		case domain.Asset:
			if current(acc) {
				return domain.SectionCurrentAsset, true
			}
			return domain.SectionNonCurrentAsset, true
		case domain.Liability:
			if current(acc) {
				return domain.SectionCurrentLiability, true
			}
			return domain.SectionNonCurrentLiability, true
		case domain.Equity:
			return domain.SectionEquity, true
		case domain.Income:
			return domain.SectionSales, true
		case domain.Expense:
			return domain.SectionAdminExpense, true
		}
		return "", false
	}
}

// ByCodePrefix is the last-resort heuristic for accounts carrying neither a
// statement group nor a known kind: the leading code segment encodes the
// statement side (1 asset, 2 liability, 3 equity, 4 result).
func ByCodePrefix(acc domain.Account) (domain.SectionID, bool) {
	code := acc.Code
	if idx := strings.Index(code, "."); idx > 0 {
		code = code[:idx]
	}
	switch code {
	case "1":
		return domain.SectionCurrentAsset, true
	case "2":
		return domain.SectionCurrentLiability, true
	case "3":
		return domain.SectionEquity, true
	case "4":
		return domain.SectionOtherResult, true
	}
	return "", false
}

// ClassifyAccount resolves the section for a postable account by running
// the rule chain: explicit group, then kind default, then code prefix.
func ClassifyAccount(acc domain.Account, opts StatementOptions) (domain.SectionID, bool) {
	rules := []ClassifierRule{ByStatementGroup, ByKind(opts.IsCurrent), ByCodePrefix}
	for _, rule := range rules {
		if section, ok := rule(acc); ok {
			return section, ok
		}
	}
	return "", false
}

// ComputeStatements classifies every account with movements into its
// statement section and derives the balance sheet and income statement. It
// never fails: an out-of-balance sheet is fully computed and returned with
// IsBalanced=false and the signed Diff.
func ComputeStatements(ledger map[string]*domain.LedgerAccount, accounts []domain.Account, opts StatementOptions) domain.Statements {
	incomeLedger := opts.IncomeLedger
	if incomeLedger == nil {
		incomeLedger = ledger
	}

	sections := map[domain.SectionID]*domain.StatementSection{}
	for _, id := range []domain.SectionID{
		domain.SectionCurrentAsset, domain.SectionNonCurrentAsset,
		domain.SectionCurrentLiability, domain.SectionNonCurrentLiability,
		domain.SectionEquity,
		domain.SectionSales, domain.SectionOtherIncome,
		domain.SectionCOGS, domain.SectionAdminExpense, domain.SectionSellingExpense,
		domain.SectionFinancial, domain.SectionOtherResult,
	} {
		sections[id] = &domain.StatementSection{ID: id, Subtotal: decimal.Zero, NetTotal: decimal.Zero}
	}

	kindByAccount := make(map[string]domain.AccountKind, len(accounts))
	for _, acc := range accounts {
		if !acc.Postable() {
			continue
		}
		kindByAccount[acc.AccountID] = acc.Kind

		section, ok := ClassifyAccount(acc, opts)
		if !ok {
			continue
		}
		source := ledger
		if isResultSection(section) {
			source = incomeLedger
		}
		la, ok := source[acc.AccountID]
		if !ok {
			continue
		}
		appendRow(sections[section], acc, la.Balance)
	}

	bs := domain.BalanceSheet{
		CurrentAssets:         *sections[domain.SectionCurrentAsset],
		NonCurrentAssets:      *sections[domain.SectionNonCurrentAsset],
		CurrentLiabilities:    *sections[domain.SectionCurrentLiability],
		NonCurrentLiabilities: *sections[domain.SectionNonCurrentLiability],
		Equity:                *sections[domain.SectionEquity],
	}
	bs.TotalAssets = bs.CurrentAssets.NetTotal.Add(bs.NonCurrentAssets.NetTotal)
	bs.TotalLiabilities = bs.CurrentLiabilities.NetTotal.Add(bs.NonCurrentLiabilities.NetTotal)
	bs.TotalEquity = bs.Equity.NetTotal
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	bs.Diff = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	bs.IsBalanced = bs.Diff.Abs().LessThan(balanceSheetEpsilon)

	is := domain.IncomeStatement{
		Sales:            *sections[domain.SectionSales],
		CostOfGoodsSold:  *sections[domain.SectionCOGS],
		AdminExpenses:    *sections[domain.SectionAdminExpense],
		SellingExpenses:  *sections[domain.SectionSellingExpense],
		FinancialResults: *sections[domain.SectionFinancial],
		OtherIncome:      *sections[domain.SectionOtherIncome],
		OtherResults:     *sections[domain.SectionOtherResult],
	}
	is.GrossProfit = is.Sales.NetTotal.Sub(is.CostOfGoodsSold.NetTotal)
	is.OperatingIncome = is.GrossProfit.Sub(is.AdminExpenses.NetTotal).Sub(is.SellingExpenses.NetTotal)
	is.NetFinancialResult = netResultOf(is.FinancialResults, kindByAccount)
	is.NetOtherResult = netResultOf(is.OtherIncome, kindByAccount).Add(netResultOf(is.OtherResults, kindByAccount))
	is.NetIncome = is.OperatingIncome.Add(is.NetFinancialResult).Add(is.NetOtherResult)

	return domain.Statements{BalanceSheet: bs, IncomeStatement: is}
}

func isResultSection(id domain.SectionID) bool {
	switch id {
	case domain.SectionSales, domain.SectionOtherIncome, domain.SectionCOGS,
		domain.SectionAdminExpense, domain.SectionSellingExpense,
		domain.SectionFinancial, domain.SectionOtherResult:
		return true
	}
	return false
}

// appendRow adds an account balance to a section. Subtotal sums only the
// normal members; NetTotal subtracts the contra members from that sum.
func appendRow(section *domain.StatementSection, acc domain.Account, balance decimal.Decimal) {
	section.Rows = append(section.Rows, domain.SectionRow{
		AccountID: acc.AccountID,
		Code:      acc.Code,
		Name:      acc.Name,
		Balance:   balance,
		IsContra:  acc.IsContra,
	})
	if acc.IsContra {
		section.NetTotal = section.NetTotal.Sub(balance)
	} else {
		section.Subtotal = section.Subtotal.Add(balance)
		section.NetTotal = section.NetTotal.Add(balance)
	}
}

// netResultOf folds a mixed result section into a signed net: income-kind
// balances add, expense-kind balances subtract, and the contra flag flips
// the contribution either way.
func netResultOf(section domain.StatementSection, kindByAccount map[string]domain.AccountKind) decimal.Decimal {
	net := decimal.Zero
	for _, row := range section.Rows {
		contribution := row.Balance
		if kindByAccount[row.AccountID] == domain.Expense {
			contribution = contribution.Neg()
		}
		if row.IsContra {
			contribution = contribution.Neg()
		}
		net = net.Add(contribution)
	}
	return net
}

// IsClosingEntry recognizes period-closing transfers heuristically: every
// line targets either a result (income/expense) account or an equity
// account, with at least one of each. Such entries zero the result accounts
// into equity and would double-count the period if left in the income
// statement input.
func IsClosingEntry(entry domain.JournalEntry, accounts []domain.Account) bool {
	kinds := make(map[string]domain.AccountKind, len(accounts))
	for _, acc := range accounts {
		kinds[acc.AccountID] = acc.Kind
	}
	return isClosingEntry(entry, kinds)
}

func isClosingEntry(entry domain.JournalEntry, kinds map[string]domain.AccountKind) bool {
	resultLines, equityLines := 0, 0
	for _, line := range entry.Lines {
		kind, known := kinds[line.AccountID]
		if !known {
			return false
		}
		switch kind {
		case domain.Income, domain.Expense:
			resultLines++
		case domain.Equity:
			equityLines++
		default:
			return false
		}
	}
	return resultLines > 0 && equityLines > 0
}

// FilterClosingEntries returns the entries with recognized closing entries
// removed. It is a pre-processing step for income statement input, not part
// of classification.
func FilterClosingEntries(entries []domain.JournalEntry, accounts []domain.Account) []domain.JournalEntry {
	kinds := make(map[string]domain.AccountKind, len(accounts))
	for _, acc := range accounts {
		kinds[acc.AccountID] = acc.Kind
	}
	kept := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if isClosingEntry(entry, kinds) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
