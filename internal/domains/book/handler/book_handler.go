package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Book not found")
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error, fallback string) {
	status := book.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(fallback)
		response.InternalServerError(c, fallback)
		return
	}
	response.Error(c, status, err.Error())
}

// Search - GET /books/search?search&genre&authorName&page&limit&sortBy&order
// Malformed pagination or sort input never fails the request; it
// coerces to the defaults inside the query builder.
func (h *BookHandler) Search(c *gin.Context) {
	params := book.SearchParams{
		Search:     c.Query("search"),
		Genre:      c.Query("genre"),
		AuthorName: c.Query("authorName"),
		Page:       c.Query("page"),
		Limit:      c.Query("limit"),
		SortBy:     c.Query("sortBy"),
		Order:      c.Query("order"),
	}

	result, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "Failed to search books")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Create - POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err, "Failed to create book")
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// GetAll - GET /books
func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list books")
		return
	}
	if books == nil {
		books = []book.Book{}
	}

	response.JSON(c, http.StatusOK, books)
}

// GetByID - GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to get book")
		return
	}

	response.JSON(c, http.StatusOK, b)
}

// Update - PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err, "Failed to update book")
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// Delete - DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete book")
		return
	}

	response.JSON(c, http.StatusOK, book.DeleteResponse{Message: "Book deleted successfully"})
}
