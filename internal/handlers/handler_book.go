package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
	"github.com/contalibre/contalibre_backend/internal/dto"
	"github.com/contalibre/contalibre_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookHandler handles HTTP requests related to workbooks.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
	// seedChartDefault applies when a create request leaves the
	// seedDefaultChart flag unset.
	seedChartDefault bool
}

func newBookHandler(bs portssvc.BookSvcFacade, seedChartDefault bool) *bookHandler {
	return &bookHandler{bookService: bs, seedChartDefault: seedChartDefault}
}

// registerBookRoutes registers workbook routes plus everything nested under
// a specific book: accounts, entries and reports.
func registerBookRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, seedChartDefault bool) {
	h := newBookHandler(services.Book, seedChartDefault)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listBooks)
	}

	bookSpecific := rg.Group("/books/:book_id")
	{
		bookSpecific.GET("", h.getBook)
		bookSpecific.PUT("", h.updateBook)

		registerAccountRoutes(bookSpecific, services.Account)
		registerEntryRoutes(bookSpecific, services.Entry)
		registerReportingRoutes(bookSpecific, services.Reporting)
	}
}

func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if req.SeedDefaultChart == nil {
		req.SeedDefaultChart = &h.seedChartDefault
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), req, operator)
	if err != nil {
		logger.Error("Failed to create book", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create book"})
		return
	}

	logger.Info("Book created", slog.String("book_id", book.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	books, err := h.bookService.ListBooks(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBooksResponse(books))
}

func (h *bookHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")

	book, err := h.bookService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to get book", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get book"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *bookHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("book_id")

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req, operator)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to update book", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update book"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}
