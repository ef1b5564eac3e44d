package domain

// AccountKind defines the fundamental accounting type of an account.
type AccountKind string

const (
	Asset     AccountKind = "ASSET"
	Liability AccountKind = "LIABILITY"
	Equity    AccountKind = "EQUITY"
	Income    AccountKind = "INCOME"
	Expense   AccountKind = "EXPENSE"
)

// EntrySide indicates the debit/credit direction of a movement or balance.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// NormalSideFor returns the side on which an account of the given kind
// increases: Debit for Asset/Expense, Credit for everything else.
func NormalSideFor(kind AccountKind) EntrySide {
	if kind == Asset || kind == Expense {
		return Debit
	}
	return Credit
}

// Account represents one bucket in the chart of accounts.
// This is the primary representation used by services and the engine.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	BookID          string      `json:"bookID"`          // FK -> books.book_id (NON-NULL)
	Code            string      `json:"code"`            // Hierarchical dotted code, e.g. "1.1.01.01"
	Name            string      `json:"name"`            // User-defined name
	Kind            AccountKind `json:"kind"`            // ASSET, LIABILITY, etc.
	NormalSide      EntrySide   `json:"normalSide"`      // Side on which the balance grows
	IsHeader        bool        `json:"isHeader"`        // Non-postable aggregator (rubro)
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (Self-referencing)
	StatementGroup  string      `json:"statementGroup"`  // Presentation classification, e.g. "current_asset"
	IsContra        bool        `json:"isContra"`        // Subtracts from its statement section
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft delete or status flag
	AuditFields                 // Embed CreatedAt, CreatedBy, etc.
}

// Postable reports whether entry lines may target this account.
// Header accounts exist only to group descendants.
func (a Account) Postable() bool {
	return !a.IsHeader
}
