package accounting

import (
	"fmt"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// entryBalanceEpsilon is the tolerance for the per-entry debit/credit
// balance check.
var entryBalanceEpsilon = decimal.NewFromFloat(0.01)

// ValidationResult reports the outcome of validating one journal entry.
// Diff is the signed difference sum(debit) - sum(credit).
type ValidationResult struct {
	OK     bool            `json:"ok"`
	Errors []string        `json:"errors"`
	Diff   decimal.Decimal `json:"diff"`
}

// ValidateEntry runs the per-entry invariants and collects every violation
// rather than stopping at the first. It is a pure check with no side
// effects; the write boundary (entry service) refuses to persist an entry
// whose result is not OK.
//
// A line with both debit and credit positive is malformed input that the
// transport layer rejects before an entry ever reaches this check.
func ValidateEntry(entry domain.JournalEntry) ValidationResult {
	result := ValidationResult{OK: true, Diff: decimal.Zero}

	linesWithAccount := 0
	for _, line := range entry.Lines {
		if line.AccountID != "" {
			linesWithAccount++
		}
	}
	if linesWithAccount < 2 {
		result.OK = false
		result.Errors = append(result.Errors, "entry needs at least 2 lines with an account")
	}

	totalDebit := entry.TotalDebit()
	totalCredit := entry.TotalCredit()
	diff := totalDebit.Sub(totalCredit)
	result.Diff = diff
	if diff.Abs().GreaterThan(entryBalanceEpsilon) {
		result.OK = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("entry does not balance: debits %s, credits %s", totalDebit.String(), totalCredit.String()))
	}

	return result
}
