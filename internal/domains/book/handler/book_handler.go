package handler

import (
	"net/http"
	"strconv"

	"shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/domains/book/service"
	reviewmodel "shelfio-backend/internal/domains/review/model"
	"shelfio-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

func parseBookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid book ID")
		return 0, false
	}
	return id, true
}

// AddBookByISBN - POST /api/v1/books/isbn/:isbn
func (h *Handler) AddBookByISBN(c *gin.Context) {
	book, err := h.service.AddBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.CreateBookManually(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateReadingStatus - PUT /api/v1/books/:id/status
func (h *Handler) UpdateReadingStatus(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req model.UpdateReadingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.UpdateReadingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// UpdatePagesRead - PUT /api/v1/books/:id/pages-read
func (h *Handler) UpdatePagesRead(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req model.UpdatePagesReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.UpdatePagesRead(c.Request.Context(), id, *req.PagesRead)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// AddReview - POST /api/v1/books/:id/reviews
func (h *Handler) AddReview(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req reviewmodel.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.AddReview(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// GetBooksByStatus - GET /api/v1/books/status/:status
func (h *Handler) GetBooksByStatus(c *gin.Context) {
	books, err := h.service.GetBooksByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetBooksByCategory - GET /api/v1/books/category/:category
func (h *Handler) GetBooksByCategory(c *gin.Context) {
	books, err := h.service.GetBooksByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetTotalPagesRead - GET /api/v1/books/stats/pages-read
func (h *Handler) GetTotalPagesRead(c *gin.Context) {
	total, err := h.service.GetTotalPagesRead(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"total_pages_read": total})
}

// GetLatestBook - GET /api/v1/books/latest
func (h *Handler) GetLatestBook(c *gin.Context) {
	book, err := h.service.GetLatestBook(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// GetRecentBooks - GET /api/v1/books/recent
func (h *Handler) GetRecentBooks(c *gin.Context) {
	books, err := h.service.GetRecentBooks(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetAllBooks - GET /api/v1/books
func (h *Handler) GetAllBooks(c *gin.Context) {
	books, err := h.service.GetAllBooks(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetBooksCount - GET /api/v1/books/count
func (h *Handler) GetBooksCount(c *gin.Context) {
	count, err := h.service.GetBooksCount(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}
