package handler

import (
	"net/http"
	"strconv"

	"shelfio-backend/internal/domains/collection/model"
	"shelfio-backend/internal/domains/collection/service"
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

// CreateCollection - POST /api/v1/collections
func (h *Handler) CreateCollection(c *gin.Context) {
	var req model.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	collection, err := h.service.CreateCollection(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, collection)
}

// GetCollection - GET /api/v1/collections/:id
func (h *Handler) GetCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	collection, err := h.service.GetCollectionByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, collection)
}

// GetAllCollections - GET /api/v1/collections
func (h *Handler) GetAllCollections(c *gin.Context) {
	collections, err := h.service.GetAllCollections(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, collections)
}

// AddBook - POST /api/v1/collections/:id/books/:bookId
func (h *Handler) AddBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}

	collection, err := h.service.AddBookToCollection(c.Request.Context(), id, bookID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, collection)
}

// RemoveBook - DELETE /api/v1/collections/:id/books/:bookId
func (h *Handler) RemoveBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}

	collection, err := h.service.RemoveBookFromCollection(c.Request.Context(), id, bookID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, collection)
}

// DeleteCollection - DELETE /api/v1/collections/:id
func (h *Handler) DeleteCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCollection(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
