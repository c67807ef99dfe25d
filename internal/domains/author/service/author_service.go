package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author"
)

type authorService struct {
	repo author.Repository
}

// NewAuthorService wires the service to its repository. The service
// depends on the Repository abstraction, not the concrete store.
func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	a := &author.Author{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Bio:         req.Bio,
		Nationality: req.Nationality,
		BirthYear:   req.BirthYear,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *authorService) GetAll(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) GetDetail(ctx context.Context, id uuid.UUID) (*author.DetailResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.GetBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []author.AuthorBook{}
	}

	return &author.DetailResponse{
		Author:    *a,
		Books:     books,
		BookCount: len(books),
	}, nil
}

// Update applies a partial update: only fields supplied in the request
// change, everything else keeps its current value.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.DetailResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyTo(&updated)

	result, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.GetBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []author.AuthorBook{}
	}

	return &author.DetailResponse{
		Author:    *result,
		Books:     books,
		BookCount: len(books),
	}, nil
}

// Delete blocks while the author still has books. The repository's
// foreign-key translation backs this up in case a book is created
// between the check and the delete.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	bookCount, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check book count: %w", err)
	}
	if bookCount > 0 {
		return fmt.Errorf("%w: author has %d linked books", author.ErrAuthorHasBooks, bookCount)
	}

	return s.repo.Delete(ctx, id)
}

// GetStats computes the statistics summary. The author existence check
// runs first and short-circuits with NotFound; the sub-aggregates are
// independent of each other and run concurrently. A failure in any one
// fails the whole aggregate.
func (s *authorService) GetStats(ctx context.Context, id uuid.UUID) (*author.Stats, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		totalBooks        int
		first, latest     *author.YearRef
		avgPages          *float64
		genres            []string
		longest, shortest *author.PagesRef
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalBooks, err = s.repo.CountBooks(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		first, err = s.repo.FirstBookByYear(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		latest, err = s.repo.LatestBookByYear(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		avgPages, err = s.repo.AveragePages(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		genres, err = s.repo.DistinctGenres(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		longest, err = s.repo.LongestBook(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		shortest, err = s.repo.ShortestBook(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute author statistics: %w", err)
	}

	averagePages := 0
	if avgPages != nil {
		averagePages = int(math.Round(*avgPages))
	}
	if genres == nil {
		genres = []string{}
	}

	return &author.Stats{
		AuthorID:     a.ID,
		AuthorName:   a.Name,
		TotalBooks:   totalBooks,
		FirstBook:    first,
		LatestBook:   latest,
		AveragePages: averagePages,
		Genres:       genres,
		LongestBook:  longest,
		ShortestBook: shortest,
	}, nil
}

func (s *authorService) GetBooks(ctx context.Context, id uuid.UUID) (*author.BooksResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.GetBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []author.AuthorBook{}
	}

	return &author.BooksResponse{
		Author: author.BookListAuthor{
			ID:   a.ID,
			Name: a.Name,
		},
		TotalBooks: len(books),
		Books:      books,
	}, nil
}
