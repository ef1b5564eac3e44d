package accounting_test

import (
	"testing"

	"github.com/contalibre/contalibre_backend/internal/core/accounting"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(id, code string, kind domain.AccountKind) domain.Account {
	return domain.Account{
		AccountID:  id,
		Code:       code,
		Name:       "Account " + code,
		Kind:       kind,
		NormalSide: domain.NormalSideFor(kind),
		IsActive:   true,
	}
}

func TestBuildHierarchyDerivesParentFromCode(t *testing.T) {
	accounts := []domain.Account{
		testAccount("a1", "1", domain.Asset),
		testAccount("a11", "1.1", domain.Asset),
		testAccount("a1101", "1.1.01", domain.Asset),
	}

	h := accounting.BuildHierarchy(accounts)

	parent, ok := h.Parent("a1101")
	require.True(t, ok)
	assert.Equal(t, "a11", parent)

	parent, ok = h.Parent("a11")
	require.True(t, ok)
	assert.Equal(t, "a1", parent)

	_, ok = h.Parent("a1")
	assert.False(t, ok)

	assert.Equal(t, []string{"a11", "a1"}, h.Ancestors("a1101"), "ancestors are nearest-first")
	assert.Equal(t, []string{"a11", "a1101"}, h.Descendants("a1"))
	assert.False(t, h.HasCycle())
}

func TestBuildHierarchyExplicitParentWinsOverCode(t *testing.T) {
	accounts := []domain.Account{
		testAccount("root", "1", domain.Asset),
		testAccount("other", "9", domain.Asset),
		testAccount("child", "1.1", domain.Asset),
	}
	// Explicit link points away from what the code would derive.
	accounts[2].ParentAccountID = "other"

	h := accounting.BuildHierarchy(accounts)

	parent, ok := h.Parent("child")
	require.True(t, ok)
	assert.Equal(t, "other", parent)
	assert.Empty(t, h.Children("root"))
}

func TestBuildHierarchyDanglingParentFallsBackToCode(t *testing.T) {
	accounts := []domain.Account{
		testAccount("root", "1", domain.Asset),
		testAccount("child", "1.1", domain.Asset),
	}
	accounts[1].ParentAccountID = "missing"

	h := accounting.BuildHierarchy(accounts)

	parent, ok := h.Parent("child")
	require.True(t, ok)
	assert.Equal(t, "root", parent)
}

func TestBuildHierarchyMalformedCodeIsRoot(t *testing.T) {
	accounts := []domain.Account{
		testAccount("a", "", domain.Asset),
		testAccount("b", "abc", domain.Asset),
		testAccount("c", ".1", domain.Asset),
	}

	h := accounting.BuildHierarchy(accounts)

	for _, acc := range accounts {
		_, ok := h.Parent(acc.AccountID)
		assert.False(t, ok, "account %s should be a root", acc.AccountID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, h.Roots(accounts))
}

func TestBuildHierarchyDuplicateCodeFirstWins(t *testing.T) {
	accounts := []domain.Account{
		testAccount("first", "1.1", domain.Asset),
		testAccount("second", "1.1", domain.Asset),
		testAccount("child", "1.1.01", domain.Asset),
	}

	h := accounting.BuildHierarchy(accounts)

	parent, ok := h.Parent("child")
	require.True(t, ok)
	assert.Equal(t, "first", parent, "first account in input order owns the code")
}

func TestBuildHierarchyCycleTerminatesAndIsFlagged(t *testing.T) {
	a := testAccount("a", "", domain.Asset)
	b := testAccount("b", "", domain.Asset)
	a.ParentAccountID = "b"
	b.ParentAccountID = "a"

	h := accounting.BuildHierarchy([]domain.Account{a, b})

	assert.True(t, h.HasCycle())
	assert.NotEmpty(t, h.CycleAccountIDs)
	// The walk still yields a bounded chain.
	assert.Equal(t, []string{"b"}, h.Ancestors("a"))
}

func TestBuildHierarchySelfReferenceIsRoot(t *testing.T) {
	a := testAccount("a", "", domain.Asset)
	a.ParentAccountID = "a"

	h := accounting.BuildHierarchy([]domain.Account{a})

	_, ok := h.Parent("a")
	assert.False(t, ok)
	assert.False(t, h.HasCycle())
}
