package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contalibre/contalibre_backend/internal/adapters/database/memory"
	"github.com/contalibre/contalibre_backend/internal/core/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/contalibre/contalibre_backend/internal/handlers"
	"github.com/contalibre/contalibre_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "admin"
	testPassword = "correct horse battery staple"
)

// APITestSuite exercises the full HTTP surface against the in-memory store:
// real routing, real middleware, real services.
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	suite.Require().NoError(err)

	cfg := &config.Config{
		JWTSecret:            "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:    time.Hour,
		JWTIssuer:            "contalibre-test",
		OperatorUsername:     testUsername,
		OperatorPasswordHash: string(hash),
		SeedDefaultChart:     true,
	}

	store := memory.NewStore()
	container := services.NewServiceContainer(store.Provider())

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)

	suite.token = suite.login(testPassword, http.StatusOK)
}

// login posts credentials and returns the issued token (empty on failure).
func (suite *APITestSuite) login(password string, wantStatus int) string {
	body, _ := json.Marshal(dto.LoginRequest{Username: testUsername, Password: password})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(wantStatus, w.Code, "login response: %s", w.Body.String())

	if w.Code != http.StatusOK {
		return ""
	}
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (suite *APITestSuite) do(method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// createBook is a helper used by most tests.
func (suite *APITestSuite) createBook(seedChart bool) dto.BookResponse {
	w := suite.do(http.MethodPost, "/api/v1/books", dto.CreateBookRequest{
		Name:             "Libro de Prueba",
		CurrencyCode:     "ARS",
		SeedDefaultChart: &seedChart,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var book dto.BookResponse
	suite.decode(w, &book)
	return book
}

func (suite *APITestSuite) createAccount(bookID string, req dto.CreateAccountRequest) dto.AccountResponse {
	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/accounts", bookID), req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var acc dto.AccountResponse
	suite.decode(w, &acc)
	return acc
}

// --- Auth ---

func (suite *APITestSuite) TestLogin_WrongPassword() {
	suite.login("not the password", http.StatusUnauthorized)
}

func (suite *APITestSuite) TestProtectedRoute_RequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestHealth_IsPublic() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Books ---

func (suite *APITestSuite) TestCreateAndGetBook() {
	book := suite.createBook(false)

	w := suite.do(http.MethodGet, "/api/v1/books/"+book.BookID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var fetched dto.BookResponse
	suite.decode(w, &fetched)
	suite.Equal(book.BookID, fetched.BookID)
	suite.Equal("Libro de Prueba", fetched.Name)
}

func (suite *APITestSuite) TestGetBook_NotFound() {
	w := suite.do(http.MethodGet, "/api/v1/books/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Accounts ---

func (suite *APITestSuite) TestSeededChartAndHierarchy() {
	book := suite.createBook(true)

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/accounts", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListAccountsResponse
	suite.decode(w, &list)
	suite.NotEmpty(list.Accounts)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/accounts/hierarchy", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var tree dto.HierarchyResponse
	suite.decode(w, &tree)
	suite.Empty(tree.CycleAccountIDs)
	suite.Len(tree.Roots, 4, "the seeded chart has the four classic top-level headers")
}

func (suite *APITestSuite) TestCreateBook_OmittedSeedFlagUsesConfigDefault() {
	// The suite config sets SeedDefaultChart; a request that leaves the
	// flag out inherits it, an explicit false still wins.
	w := suite.do(http.MethodPost, "/api/v1/books", gin.H{
		"name":         "Libro sin flag",
		"currencyCode": "ARS",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var book dto.BookResponse
	suite.decode(w, &book)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/accounts", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListAccountsResponse
	suite.decode(w, &list)
	suite.NotEmpty(list.Accounts, "omitted flag should fall back to the configured default")

	explicit := suite.createBook(false)
	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/accounts", explicit.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var empty dto.ListAccountsResponse
	suite.decode(w, &empty)
	suite.Empty(empty.Accounts, "explicit false must override the configured default")
}

func (suite *APITestSuite) TestCreateAccount_DuplicateCodeConflicts() {
	book := suite.createBook(false)
	req := dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"}
	suite.createAccount(book.BookID, req)

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/accounts", book.BookID), req)
	suite.Equal(http.StatusConflict, w.Code)
}

// --- Entries ---

func (suite *APITestSuite) entryPayload(cashID, salesID string, debit, credit string) gin.H {
	return gin.H{
		"date": "2026-02-10",
		"memo": "venta",
		"lines": []gin.H{
			{"accountID": cashID, "debit": debit},
			{"accountID": salesID, "credit": credit},
		},
	}
}

func (suite *APITestSuite) TestCreateEntry_RoundTrip() {
	book := suite.createBook(false)
	cash := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"})
	sales := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "4.1.01", Name: "Ventas", Kind: "INCOME"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID),
		suite.entryPayload(cash.AccountID, sales.AccountID, "125.50", "125.50"))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.EntryResponse
	suite.decode(w, &created)
	suite.Len(created.Lines, 2)
	suite.Equal("POSTED", string(created.Status))

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/entries/%s", book.BookID, created.EntryID), nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestCreateEntry_Unbalanced422WithVerdict() {
	book := suite.createBook(false)
	cash := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"})
	sales := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "4.1.01", Name: "Ventas", Kind: "INCOME"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID),
		suite.entryPayload(cash.AccountID, sales.AccountID, "200.00", "100.00"))
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var verdict dto.ValidationErrorResponse
	suite.decode(w, &verdict)
	suite.NotEmpty(verdict.Errors)
	suite.Equal("100", verdict.Diff.String())
}

func (suite *APITestSuite) TestCreateEntry_BothSidesOnOneLineRejected() {
	book := suite.createBook(false)
	cash := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"})
	sales := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "4.1.01", Name: "Ventas", Kind: "INCOME"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID), gin.H{
		"date": "2026-02-10",
		"lines": []gin.H{
			{"accountID": cash.AccountID, "debit": "50.00", "credit": "50.00"},
			{"accountID": sales.AccountID, "credit": "50.00"},
		},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCreateEntry_HeaderAccountRejected() {
	book := suite.createBook(false)
	header := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1", Name: "Activo Corriente", Kind: "ASSET", IsHeader: true})
	sales := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "4.1.01", Name: "Ventas", Kind: "INCOME"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID),
		suite.entryPayload(header.AccountID, sales.AccountID, "100.00", "100.00"))
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Contains(resp.Error, "header account")

	// Nothing may have been persisted for the refused entry.
	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var entries dto.ListEntriesResponse
	suite.decode(w, &entries)
	suite.Empty(entries.Entries)
}

func (suite *APITestSuite) TestReverseEntry() {
	book := suite.createBook(false)
	cash := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"})
	sales := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "4.1.01", Name: "Ventas", Kind: "INCOME"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID),
		suite.entryPayload(cash.AccountID, sales.AccountID, "75.00", "75.00"))
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created dto.EntryResponse
	suite.decode(w, &created)

	w = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries/%s/reverse", book.BookID, created.EntryID), nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var reversal dto.EntryResponse
	suite.decode(w, &reversal)
	suite.NotEqual(created.EntryID, reversal.EntryID)
	suite.Equal(created.Lines[0].AccountID, reversal.Lines[0].AccountID)
	suite.True(reversal.Lines[0].Credit.Equal(created.Lines[0].Debit))
}

// --- Reports ---

func (suite *APITestSuite) TestReports_EndToEnd() {
	book := suite.createBook(false)
	cash := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "1.1.01", Name: "Caja", Kind: "ASSET"})
	capital := suite.createAccount(book.BookID, dto.CreateAccountRequest{Code: "3.01", Name: "Capital", Kind: "EQUITY"})

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/books/%s/entries", book.BookID), gin.H{
		"date": "2026-02-01",
		"lines": []gin.H{
			{"accountID": cash.AccountID, "debit": "1000.00"},
			{"accountID": capital.AccountID, "credit": "1000.00"},
		},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/accounts/%s/ledger", book.BookID, cash.AccountID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var ledger dto.LedgerAccountResponse
	suite.decode(w, &ledger)
	suite.Require().Len(ledger.Ledger.Movements, 1)
	suite.Equal("1000", ledger.Ledger.Balance.String())

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/reports/trial-balance", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var tb dto.TrialBalanceResponse
	suite.decode(w, &tb)
	suite.Len(tb.Rows, 2)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/reports/statements", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stmts dto.StatementsResponse
	suite.decode(w, &stmts)
	suite.True(stmts.Statements.BalanceSheet.IsBalanced)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/reports/rollup", book.BookID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var rollup dto.RollupResponse
	suite.decode(w, &rollup)
	suite.Len(rollup.Totals, 2)
	suite.Empty(rollup.CycleAccountIDs)
}

func (suite *APITestSuite) TestReports_BadAsOfDate() {
	book := suite.createBook(false)
	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%s/reports/trial-balance?asOf=tomorrow", book.BookID), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
