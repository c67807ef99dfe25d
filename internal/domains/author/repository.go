package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the author domain. The statistics
// queries are split out per sub-aggregate so the service can issue them
// independently (and concurrently).
type Repository interface {
	// Create inserts a new author.
	// Errors: ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID retrieves an author by id.
	// Errors: ErrAuthorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetAll retrieves all authors, newest first.
	GetAll(ctx context.Context) ([]Author, error)

	// Update writes the full author row.
	// Errors: ErrAuthorNotFound, ErrDuplicateEmail.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes an author by id.
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks (FK backstop).
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBooks returns the author's books ordered by published year
	// descending.
	GetBooks(ctx context.Context, authorID uuid.UUID) ([]AuthorBook, error)

	// CountBooks counts all books for the author, including books with
	// null optional fields.
	CountBooks(ctx context.Context, authorID uuid.UUID) (int, error)

	// FirstBookByYear / LatestBookByYear select the book with the
	// minimum / maximum published year among books that have one.
	// Ties resolve to the lowest id. nil when no book qualifies.
	FirstBookByYear(ctx context.Context, authorID uuid.UUID) (*YearRef, error)
	LatestBookByYear(ctx context.Context, authorID uuid.UUID) (*YearRef, error)

	// AveragePages returns the raw mean page count over books with a
	// non-null page count, or nil when none qualify.
	AveragePages(ctx context.Context, authorID uuid.UUID) (*float64, error)

	// DistinctGenres returns the set of non-null genres across the
	// author's books. Order carries no meaning.
	DistinctGenres(ctx context.Context, authorID uuid.UUID) ([]string, error)

	// LongestBook / ShortestBook select by page count among books that
	// have one. Ties resolve to the lowest id. nil when none qualify.
	LongestBook(ctx context.Context, authorID uuid.UUID) (*PagesRef, error)
	ShortestBook(ctx context.Context, authorID uuid.UUID) (*PagesRef, error)
}
