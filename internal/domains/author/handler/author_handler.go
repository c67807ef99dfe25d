package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// parseID maps an unparseable id to NotFound: a malformed id cannot
// reference an existing author.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Author not found")
		return uuid.Nil, false
	}
	return id, true
}

// fail maps a domain error to its status code, hiding internals behind
// a generic message on 500.
func fail(c *gin.Context, err error, fallback string) {
	status := author.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(fallback)
		response.InternalServerError(c, fallback)
		return
	}
	response.Error(c, status, err.Error())
}

// Create - POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
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
		fail(c, err, "Failed to create author")
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// GetAll - GET /authors
func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list authors")
		return
	}
	if authors == nil {
		authors = []author.Author{}
	}

	response.JSON(c, http.StatusOK, authors)
}

// GetByID - GET /authors/:id
// Returns the author with nested books and book count.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to get author")
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

// Update - PUT /authors/:id
// Partial update: only supplied fields change. Validation runs before
// any store access, so a malformed email mutates nothing.
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req author.UpdateAuthorRequest
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
		fail(c, err, "Failed to update author")
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// Delete - DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, author.ErrAuthorHasBooks) {
			response.Conflict(c, err.Error())
			return
		}
		fail(c, err, "Failed to delete author")
		return
	}

	response.JSON(c, http.StatusOK, author.DeleteResponse{Message: "Author deleted successfully"})
}

// GetStats - GET /authors/:id/stats
func (h *AuthorHandler) GetStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to compute author statistics")
		return
	}

	response.JSON(c, http.StatusOK, stats)
}

// GetBooks - GET /authors/:id/books
func (h *AuthorHandler) GetBooks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	books, err := h.service.GetBooks(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to list author books")
		return
	}

	response.JSON(c, http.StatusOK, books)
}
