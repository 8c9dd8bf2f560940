package handler

import (
	"net/http"
	"strconv"

	"shelfio-backend/internal/domains/review/model"
	"shelfio-backend/internal/domains/review/service"
	"shelfio-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// GetReview - GET /api/v1/reviews/:id
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.service.GetReviewByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// UpdateReview - PUT /api/v1/reviews/:id
func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// DeleteReview - DELETE /api/v1/reviews/:id
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReviewsByBook - GET /api/v1/reviews/book/:bookId
func (h *Handler) GetReviewsByBook(c *gin.Context) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}

	reviews, err := h.service.GetReviewsByBook(c.Request.Context(), bookID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}
