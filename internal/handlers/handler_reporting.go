package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/contalibre/contalibre_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the derived read-only views: ledgers, rollups,
// trial balance and financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes nested under a
// specific book.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/accounts/:account_id/ledger", h.ledger)
	rg.GET("/accounts/:account_id/ledger/consolidated", h.consolidatedLedger)

	reports := rg.Group("/reports")
	{
		reports.GET("/rollup", h.rollup)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/statements", h.statements)
	}
}

// parseAsOf reads the asOf query parameter. A zero time means "no cutoff".
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *reportingHandler) ledger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")
	accountID := c.Param("account_id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	account, ledger, err := h.reportingService.Ledger(c.Request.Context(), bookID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to compute ledger", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.LedgerAccountResponse{
		BookID:  bookID,
		Account: dto.ToAccountResponse(account),
		Ledger:  ledger,
	})
}

func (h *reportingHandler) consolidatedLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")
	accountID := c.Param("account_id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	account, movements, err := h.reportingService.ConsolidatedLedger(c.Request.Context(), bookID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to compute consolidated ledger", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute consolidated ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ConsolidatedLedgerResponse{
		BookID:    bookID,
		Account:   dto.ToAccountResponse(account),
		Movements: movements,
	})
}

func (h *reportingHandler) rollup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	totals, cycleIDs, err := h.reportingService.Rollup(c.Request.Context(), bookID, asOf)
	if err != nil {
		logger.Error("Failed to compute rollup", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute rollup"})
		return
	}

	c.JSON(http.StatusOK, dto.RollupResponse{
		BookID:          bookID,
		Totals:          totals,
		CycleAccountIDs: cycleIDs,
	})
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), bookID, asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(bookID, asOf, rows))
}

func (h *reportingHandler) statements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	excludeClosing, _ := strconv.ParseBool(c.DefaultQuery("excludeClosingEntries", "false"))

	params := portssvc.StatementsParams{
		AsOf:                  asOf,
		ExcludeClosingEntries: excludeClosing,
	}
	if raw := c.Query("nonCurrentGroups"); raw != "" {
		params.NonCurrentGroups = strings.Split(raw, ",")
	}

	stmts, err := h.reportingService.Statements(c.Request.Context(), bookID, params)
	if err != nil {
		logger.Error("Failed to compute statements", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute statements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementsResponse(bookID, asOf, excludeClosing, *stmts))
}
