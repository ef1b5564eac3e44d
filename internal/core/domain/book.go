package domain

// Book represents one accounting workbook: an isolated chart of accounts
// plus the journal entries posted against it.
type Book struct {
	BookID       string `json:"bookID"`       // Primary Key (UUID)
	Name         string `json:"name"`         // User-defined name
	CurrencyCode string `json:"currencyCode"` // Display currency, e.g. "ARS" (no conversion)
	Description  string `json:"description"`  // Nullable
	AuditFields
}
