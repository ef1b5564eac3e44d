package services

import (
	"time"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/google/uuid"
)

type seedAccount struct {
	code     string
	name     string
	kind     domain.AccountKind
	isHeader bool
	group    string
	isContra bool
}

// defaultChart is the standard chart seeded into a new book. Codes follow
// the 1=asset 2=liability 3=equity 4=result convention the classifier's
// code-prefix fallback understands.
var defaultChart = []seedAccount{
	{code: "1", name: "Activo", kind: domain.Asset, isHeader: true},
	{code: "1.1", name: "Activo Corriente", kind: domain.Asset, isHeader: true},
	{code: "1.1.01", name: "Caja", kind: domain.Asset, group: "current_asset"},
	{code: "1.1.02", name: "Banco Cuenta Corriente", kind: domain.Asset, group: "current_asset"},
	{code: "1.1.03", name: "Deudores por Ventas", kind: domain.Asset, group: "current_asset"},
	{code: "1.1.04", name: "Mercaderías", kind: domain.Asset, group: "current_asset"},
	{code: "1.2", name: "Activo No Corriente", kind: domain.Asset, isHeader: true},
	{code: "1.2.01", name: "Rodados", kind: domain.Asset, group: "non_current_asset"},
	{code: "1.2.02", name: "Muebles y Útiles", kind: domain.Asset, group: "non_current_asset"},
	{code: "1.2.03", name: "Amortización Acumulada", kind: domain.Asset, group: "non_current_asset", isContra: true},
	{code: "2", name: "Pasivo", kind: domain.Liability, isHeader: true},
	{code: "2.1", name: "Pasivo Corriente", kind: domain.Liability, isHeader: true},
	{code: "2.1.01", name: "Proveedores", kind: domain.Liability, group: "current_liability"},
	{code: "2.1.02", name: "Sueldos a Pagar", kind: domain.Liability, group: "current_liability"},
	{code: "2.2", name: "Pasivo No Corriente", kind: domain.Liability, isHeader: true},
	{code: "2.2.01", name: "Préstamos Bancarios", kind: domain.Liability, group: "non_current_liability"},
	{code: "3", name: "Patrimonio Neto", kind: domain.Equity, isHeader: true},
	{code: "3.01", name: "Capital", kind: domain.Equity, group: "equity"},
	{code: "3.02", name: "Resultados Acumulados", kind: domain.Equity, group: "equity"},
	{code: "4", name: "Resultados", kind: domain.Income, isHeader: true},
	{code: "4.1", name: "Resultados Positivos", kind: domain.Income, isHeader: true},
	{code: "4.1.01", name: "Ventas", kind: domain.Income, group: "sales"},
	{code: "4.1.02", name: "Otros Ingresos", kind: domain.Income, group: "other_income"},
	{code: "4.2", name: "Resultados Negativos", kind: domain.Expense, isHeader: true},
	{code: "4.2.01", name: "Costo de Mercaderías Vendidas", kind: domain.Expense, group: "cogs"},
	{code: "4.2.02", name: "Gastos de Administración", kind: domain.Expense, group: "admin_expense"},
	{code: "4.2.03", name: "Gastos de Comercialización", kind: domain.Expense, group: "selling_expense"},
	{code: "4.2.04", name: "Intereses Perdidos", kind: domain.Expense, group: "financial"},
}

// DefaultChart materializes the seed chart for a new book.
func DefaultChart(bookID string, creator string, now time.Time) []domain.Account {
	accounts := make([]domain.Account, len(defaultChart))
	for i, seed := range defaultChart {
		normalSide := domain.NormalSideFor(seed.kind)
		if seed.isContra {
			// A contra account grows opposite to its kind.
			if normalSide == domain.Debit {
				normalSide = domain.Credit
			} else {
				normalSide = domain.Debit
			}
		}
		accounts[i] = domain.Account{
			AccountID:      uuid.NewString(),
			BookID:         bookID,
			Code:           seed.code,
			Name:           seed.name,
			Kind:           seed.kind,
			NormalSide:     normalSide,
			IsHeader:       seed.isHeader,
			StatementGroup: seed.group,
			IsContra:       seed.isContra,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creator,
				LastUpdatedAt: now,
				LastUpdatedBy: creator,
			},
		}
	}
	return accounts
}
