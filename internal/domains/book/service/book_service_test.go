package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
)

// stubRepo implements book.Repository with per-method overrides.
type stubRepo struct {
	searchFn  func(ctx context.Context, q book.SearchQuery) ([]book.BookWithAuthor, int, error)
	createFn  func(ctx context.Context, b *book.Book) (*book.Book, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*book.Book, error)
	getAllFn  func(ctx context.Context) ([]book.Book, error)
	updateFn  func(ctx context.Context, b *book.Book) (*book.Book, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (s *stubRepo) Search(ctx context.Context, q book.SearchQuery) ([]book.BookWithAuthor, int, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, q)
	}
	return nil, 0, nil
}

func (s *stubRepo) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	if s.createFn != nil {
		return s.createFn(ctx, b)
	}
	return b, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, book.ErrBookNotFound
}

func (s *stubRepo) GetAll(ctx context.Context) ([]book.Book, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, b)
	}
	return b, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func TestBookService_Search(t *testing.T) {
	t.Run("repository receives the validated descriptor", func(t *testing.T) {
		var captured book.SearchQuery
		repo := &stubRepo{
			searchFn: func(_ context.Context, q book.SearchQuery) ([]book.BookWithAuthor, int, error) {
				captured = q
				return []book.BookWithAuthor{}, 0, nil
			},
		}
		svc := NewBookService(repo)

		_, err := svc.Search(context.Background(), book.SearchParams{
			Search: "dune",
			Page:   "2",
			Limit:  "9999",
			SortBy: "title",
			Order:  "asc",
		})

		require.NoError(t, err)
		assert.Equal(t, "dune", captured.Search)
		assert.Equal(t, 2, captured.Page)
		assert.Equal(t, book.MaxLimit, captured.Limit)
		assert.Equal(t, book.MaxLimit, captured.Offset)
		assert.Equal(t, "b.title", captured.SortColumn)
		assert.False(t, captured.SortDesc)
	})

	t.Run("pagination derives from the total, not the page size", func(t *testing.T) {
		repo := &stubRepo{
			searchFn: func(_ context.Context, _ book.SearchQuery) ([]book.BookWithAuthor, int, error) {
				return make([]book.BookWithAuthor, 10), 35, nil
			},
		}
		svc := NewBookService(repo)

		resp, err := svc.Search(context.Background(), book.SearchParams{Page: "2"})
		require.NoError(t, err)
		assert.Equal(t, 35, resp.Pagination.Total)
		assert.Equal(t, 4, resp.Pagination.TotalPages)
		assert.True(t, resp.Pagination.HasNext)
		assert.True(t, resp.Pagination.HasPrev)
	})

	t.Run("no matches yields an empty data slice", func(t *testing.T) {
		svc := NewBookService(&stubRepo{})

		resp, err := svc.Search(context.Background(), book.SearchParams{})
		require.NoError(t, err)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 1, resp.Pagination.TotalPages)
		assert.False(t, resp.Pagination.HasNext)
	})
}

func TestBookService_Create_TrimsTitle(t *testing.T) {
	var captured *book.Book
	repo := &stubRepo{
		createFn: func(_ context.Context, b *book.Book) (*book.Book, error) {
			captured = b
			b.ID = uuid.New()
			return b, nil
		},
	}
	svc := NewBookService(repo)

	authorID := uuid.New()
	created, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "  Dune  ",
		AuthorID: authorID,
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "Dune", captured.Title)
	assert.Equal(t, authorID, captured.AuthorID)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	repo := &stubRepo{
		createFn: func(_ context.Context, _ *book.Book) (*book.Book, error) {
			return nil, book.ErrAuthorNotFound
		},
	}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.New(),
	})
	assert.ErrorIs(t, err, book.ErrAuthorNotFound)
}

func TestBookService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		pages := 412
		var written *book.Book
		repo := &stubRepo{
			getByIDFn: func(_ context.Context, id uuid.UUID) (*book.Book, error) {
				return &book.Book{ID: id, Title: "Dune", Pages: &pages, AuthorID: uuid.New()}, nil
			},
			updateFn: func(_ context.Context, b *book.Book) (*book.Book, error) {
				written = b
				return b, nil
			},
		}
		svc := NewBookService(repo)

		newTitle := "Dune Messiah"
		_, err := svc.Update(context.Background(), id, &book.UpdateBookRequest{Title: &newTitle})

		require.NoError(t, err)
		require.NotNil(t, written)
		assert.Equal(t, "Dune Messiah", written.Title)
		require.NotNil(t, written.Pages)
		assert.Equal(t, 412, *written.Pages)
	})

	t.Run("missing book", func(t *testing.T) {
		svc := NewBookService(&stubRepo{})

		title := "Dune"
		_, err := svc.Update(context.Background(), id, &book.UpdateBookRequest{Title: &title})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}
