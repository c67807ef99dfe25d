package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business operations of the author domain.
type Service interface {
	// Create creates a new author. The request must already be
	// format-validated; email uniqueness is enforced by the store.
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// GetAll lists all authors, newest first.
	GetAll(ctx context.Context) ([]Author, error)

	// GetDetail returns an author with nested books and book count.
	// Errors: ErrAuthorNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*DetailResponse, error)

	// Update applies a partial update: only supplied fields change.
	// Errors: ErrAuthorNotFound, ErrDuplicateEmail.
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*DetailResponse, error)

	// Delete removes an author. Deletion is blocked while the author
	// still has books.
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetStats computes the author's book statistics. The existence
	// check short-circuits before any book query; the sub-aggregates
	// run concurrently and fail as a whole.
	// Errors: ErrAuthorNotFound.
	GetStats(ctx context.Context, id uuid.UUID) (*Stats, error)

	// GetBooks lists the author's books, newest published first.
	// Errors: ErrAuthorNotFound.
	GetBooks(ctx context.Context, id uuid.UUID) (*BooksResponse, error)
}
