package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{
		repo: repo,
	}
}

// Search is the one place raw parameters become typed values: the
// descriptor built here is what the repository executes.
func (s *bookService) Search(ctx context.Context, params book.SearchParams) (*book.SearchResponse, error) {
	q := book.BuildSearchQuery(params)

	results, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []book.BookWithAuthor{}
	}

	return &book.SearchResponse{
		Data:       results,
		Pagination: book.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	b := &book.Book{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		Pages:         req.Pages,
		AuthorID:      req.AuthorID,
	}

	return s.repo.Create(ctx, b)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) GetAll(ctx context.Context) ([]book.Book, error) {
	return s.repo.GetAll(ctx)
}

// Update applies a partial update: only supplied fields change.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyTo(&updated)

	return s.repo.Update(ctx, &updated)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
