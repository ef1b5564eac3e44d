package accounting

import (
	"strings"

	"github.com/contalibre/contalibre_backend/internal/core/domain"
)

// Hierarchy is an immutable snapshot of the parent/child/ancestor relations
// among a set of accounts. It is rebuilt from scratch whenever the account
// set changes and is never mutated in place, so it is safe to share across
// concurrent readers.
type Hierarchy struct {
	parentOf    map[string]string
	childrenOf  map[string][]string
	ancestorsOf map[string][]string // nearest ancestor first
	byID        map[string]domain.Account

	// CycleAccountIDs lists accounts whose ancestor walk revisited a node.
	// A cycle is a data-integrity problem for the caller to surface, not
	// something the builder silently repairs.
	CycleAccountIDs []string
}

// BuildHierarchy derives the account tree for a snapshot of accounts.
//
// Parent resolution, per account: the explicit ParentAccountID wins when it
// references another account in the set; otherwise the parent is derived
// from the dotted code by stripping the last segment ("1.1.01" -> "1.1")
// and looking up the account holding that code. When neither resolves the
// account is a root. If several accounts share a code, the first one in
// input order owns the code lookup.
func BuildHierarchy(accounts []domain.Account) *Hierarchy {
	h := &Hierarchy{
		parentOf:    make(map[string]string, len(accounts)),
		childrenOf:  make(map[string][]string, len(accounts)),
		ancestorsOf: make(map[string][]string, len(accounts)),
		byID:        make(map[string]domain.Account, len(accounts)),
	}

	byCode := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		if _, exists := h.byID[acc.AccountID]; exists {
			continue
		}
		h.byID[acc.AccountID] = acc
		if acc.Code != "" {
			if _, taken := byCode[acc.Code]; !taken {
				byCode[acc.Code] = acc.AccountID
			}
		}
	}

	linked := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		if linked[acc.AccountID] {
			continue // duplicate ID, first occurrence already processed
		}
		linked[acc.AccountID] = true
		parentID, ok := resolveParent(h.byID[acc.AccountID], h.byID, byCode)
		if !ok {
			continue
		}
		h.parentOf[acc.AccountID] = parentID
		h.childrenOf[parentID] = append(h.childrenOf[parentID], acc.AccountID)
	}

	// Ancestor chains walk parent links upward. The visited set bounds the
	// walk so malformed data (a parent cycle) cannot hang the computation.
	for _, acc := range accounts {
		id := acc.AccountID
		if _, done := h.ancestorsOf[id]; done {
			continue
		}
		visited := map[string]bool{id: true}
		var chain []string
		cur := id
		for {
			parent, ok := h.parentOf[cur]
			if !ok {
				break
			}
			if visited[parent] {
				h.CycleAccountIDs = append(h.CycleAccountIDs, id)
				break
			}
			visited[parent] = true
			chain = append(chain, parent)
			cur = parent
		}
		h.ancestorsOf[id] = chain
	}

	return h
}

func resolveParent(acc domain.Account, byID map[string]domain.Account, byCode map[string]string) (string, bool) {
	if acc.ParentAccountID != "" && acc.ParentAccountID != acc.AccountID {
		if _, exists := byID[acc.ParentAccountID]; exists {
			return acc.ParentAccountID, true
		}
	}
	idx := strings.LastIndex(acc.Code, ".")
	if idx <= 0 {
		return "", false
	}
	parentCode := acc.Code[:idx]
	parentID, ok := byCode[parentCode]
	if !ok || parentID == acc.AccountID {
		return "", false
	}
	return parentID, true
}

// Account returns the account for an ID, if present in the snapshot.
func (h *Hierarchy) Account(accountID string) (domain.Account, bool) {
	acc, ok := h.byID[accountID]
	return acc, ok
}

// Parent returns the resolved parent of an account, if any.
func (h *Hierarchy) Parent(accountID string) (string, bool) {
	parent, ok := h.parentOf[accountID]
	return parent, ok
}

// Children returns the direct children of an account in input order.
func (h *Hierarchy) Children(accountID string) []string {
	return h.childrenOf[accountID]
}

// Ancestors returns the full ancestor chain of an account, nearest first.
func (h *Hierarchy) Ancestors(accountID string) []string {
	return h.ancestorsOf[accountID]
}

// Descendants returns every account below the given one, in breadth-first
// order. The visited guard keeps cyclic data from looping.
func (h *Hierarchy) Descendants(accountID string) []string {
	var out []string
	visited := map[string]bool{accountID: true}
	queue := append([]string(nil), h.childrenOf[accountID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		queue = append(queue, h.childrenOf[id]...)
	}
	return out
}

// Roots returns every account without a resolved parent, in input order.
func (h *Hierarchy) Roots(accounts []domain.Account) []string {
	var out []string
	for _, acc := range accounts {
		if _, ok := h.parentOf[acc.AccountID]; !ok {
			out = append(out, acc.AccountID)
		}
	}
	return out
}

// HasCycle reports whether any ancestor walk detected a cycle.
func (h *Hierarchy) HasCycle() bool {
	return len(h.CycleAccountIDs) > 0
}
