package dto

import (
	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=50"`
	Name            string             `json:"name" binding:"required,max=100"`
	Kind            domain.AccountKind `json:"kind" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	NormalSide      domain.EntrySide   `json:"normalSide" binding:"omitempty,oneof=DEBIT CREDIT"`
	IsHeader        bool               `json:"isHeader"`
	ParentAccountID string             `json:"parentAccountID" binding:"omitempty,uuid"`
	StatementGroup  string             `json:"statementGroup" binding:"max=50"`
	IsContra        bool               `json:"isContra"`
	Description     string             `json:"description" binding:"max=500"`
}

// UpdateAccountRequest defines the expected JSON body for updating an account.
// Pointer fields distinguish "leave unchanged" from "set to zero value".
type UpdateAccountRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	StatementGroup *string `json:"statementGroup" binding:"omitempty,max=50"`
	IsContra       *bool   `json:"isContra"`
	Description    *string `json:"description" binding:"omitempty,max=500"`
}

// AccountResponse defines the JSON data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	BookID          string             `json:"bookID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	Kind            domain.AccountKind `json:"kind"`
	NormalSide      domain.EntrySide   `json:"normalSide"`
	IsHeader        bool               `json:"isHeader"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	StatementGroup  string             `json:"statementGroup,omitempty"`
	IsContra        bool               `json:"isContra"`
	Description     string             `json:"description,omitempty"`
	IsActive        bool               `json:"isActive"`
}

// ListAccountsResponse wraps the chart of accounts for a book.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		BookID:          a.BookID,
		Code:            a.Code,
		Name:            a.Name,
		Kind:            a.Kind,
		NormalSide:      a.NormalSide,
		IsHeader:        a.IsHeader,
		ParentAccountID: a.ParentAccountID,
		StatementGroup:  a.StatementGroup,
		IsContra:        a.IsContra,
		Description:     a.Description,
		IsActive:        a.IsActive,
	}
}

// HierarchyNode is one account in the nested chart-of-accounts tree.
type HierarchyNode struct {
	Account  AccountResponse `json:"account"`
	Children []HierarchyNode `json:"children,omitempty"`
}

// HierarchyResponse is the chart of accounts rendered as a tree.
type HierarchyResponse struct {
	BookID string          `json:"bookID"`
	Roots  []HierarchyNode `json:"roots"`
	// CycleAccountIDs flags accounts whose parent chain loops; non-empty
	// means the chart needs fixing.
	CycleAccountIDs []string `json:"cycleAccountIDs,omitempty"`
}

// ToHierarchyResponse renders the derived account tree for API clients.
func ToHierarchyResponse(bookID string, accounts []domain.Account, h *accounting.Hierarchy) HierarchyResponse {
	var build func(accountID string) HierarchyNode
	build = func(accountID string) HierarchyNode {
		acc, _ := h.Account(accountID)
		node := HierarchyNode{Account: ToAccountResponse(&acc)}
		for _, childID := range h.Children(accountID) {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	out := HierarchyResponse{BookID: bookID, CycleAccountIDs: h.CycleAccountIDs}
	for _, rootID := range h.Roots(accounts) {
		out.Roots = append(out.Roots, build(rootID))
	}
	return out
}

// ToListAccountsResponse converts a slice of domain.Account to ListAccountsResponse.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	out := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		out.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
