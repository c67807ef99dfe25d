package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
)

// stubService implements book.Service with per-method overrides.
type stubService struct {
	searchFn  func(ctx context.Context, params book.SearchParams) (*book.SearchResponse, error)
	createFn  func(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*book.Book, error)
	getAllFn  func(ctx context.Context) ([]book.Book, error)
	updateFn  func(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (s *stubService) Search(ctx context.Context, params book.SearchParams) (*book.SearchResponse, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, params)
	}
	return &book.SearchResponse{
		Data:       []book.BookWithAuthor{},
		Pagination: book.NewPagination(1, 10, 0),
	}, nil
}

func (s *stubService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &book.Book{ID: uuid.New(), Title: req.Title, AuthorID: req.AuthorID}, nil
}

func (s *stubService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, book.ErrBookNotFound
}

func (s *stubService) GetAll(ctx context.Context) ([]book.Book, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, req)
	}
	return nil, book.ErrBookNotFound
}

func (s *stubService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func setupRouter(svc book.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc)

	r := gin.New()
	books := r.Group("/books")
	{
		books.GET("/search", h.Search)
		books.POST("", h.Create)
		books.GET("", h.GetAll)
		books.GET("/:id", h.GetByID)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookHandler_Search(t *testing.T) {
	t.Run("query parameters pass through untouched", func(t *testing.T) {
		var captured book.SearchParams
		svc := &stubService{
			searchFn: func(_ context.Context, params book.SearchParams) (*book.SearchResponse, error) {
				captured = params
				return &book.SearchResponse{
					Data:       []book.BookWithAuthor{},
					Pagination: book.NewPagination(1, 10, 0),
				}, nil
			},
		}
		r := setupRouter(svc)

		w := doRequest(r, http.MethodGet,
			"/books/search?search=dune&genre=Fiction&authorName=Herbert&page=2&limit=5&sortBy=title&order=asc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dune", captured.Search)
		assert.Equal(t, "Fiction", captured.Genre)
		assert.Equal(t, "Herbert", captured.AuthorName)
		assert.Equal(t, "2", captured.Page)
		assert.Equal(t, "5", captured.Limit)
		assert.Equal(t, "title", captured.SortBy)
		assert.Equal(t, "asc", captured.Order)
	})

	t.Run("response carries data and pagination", func(t *testing.T) {
		r := setupRouter(&stubService{})

		w := doRequest(r, http.MethodGet, "/books/search", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "data")
		assert.Contains(t, body, "pagination")
		assert.Equal(t, "[]", string(body["data"]))

		var p book.Pagination
		require.NoError(t, json.Unmarshal(body["pagination"], &p))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 1, p.TotalPages)
	})

	t.Run("malformed pagination still succeeds", func(t *testing.T) {
		r := setupRouter(&stubService{})

		w := doRequest(r, http.MethodGet, "/books/search?page=banana&limit=-3", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBookHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r := setupRouter(&stubService{})

		body := `{"title":"Dune","authorId":"` + uuid.NewString() + `"}`
		w := doRequest(r, http.MethodPost, "/books", body)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		r := setupRouter(&stubService{})

		body := `{"authorId":"` + uuid.NewString() + `"}`
		w := doRequest(r, http.MethodPost, "/books", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown author", func(t *testing.T) {
		svc := &stubService{
			createFn: func(_ context.Context, _ *book.CreateBookRequest) (*book.Book, error) {
				return nil, book.ErrAuthorNotFound
			},
		}
		r := setupRouter(svc)

		body := `{"title":"Dune","authorId":"` + uuid.NewString() + `"}`
		w := doRequest(r, http.MethodPost, "/books", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_GetAll_EmptyIsArray(t *testing.T) {
	r := setupRouter(&stubService{})

	w := doRequest(r, http.MethodGet, "/books", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestBookHandler_GetByID(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		r := setupRouter(&stubService{})

		w := doRequest(r, http.MethodGet, "/books/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id reports not found", func(t *testing.T) {
		r := setupRouter(&stubService{})

		w := doRequest(r, http.MethodGet, "/books/not-a-uuid", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		svc := &stubService{
			getByIDFn: func(_ context.Context, gotID uuid.UUID) (*book.Book, error) {
				assert.Equal(t, id, gotID)
				return &book.Book{ID: id, Title: "Dune"}, nil
			},
		}
		r := setupRouter(svc)

		w := doRequest(r, http.MethodGet, "/books/"+id.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)

		var b book.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "Dune", b.Title)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		r := setupRouter(&stubService{})

		w := doRequest(r, http.MethodDelete, "/books/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusOK, w.Code)

		var body book.DeleteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Book deleted successfully", body.Message)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc := &stubService{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return book.ErrBookNotFound
			},
		}
		r := setupRouter(svc)

		w := doRequest(r, http.MethodDelete, "/books/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
