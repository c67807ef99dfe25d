package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the book domain.
type Repository interface {
	// Search runs the validated query descriptor and returns the page
	// of matching books with their authors plus the total match count.
	Search(ctx context.Context, q SearchQuery) ([]BookWithAuthor, int, error)

	// Create inserts a new book.
	// Errors: ErrAuthorNotFound if the referenced author does not exist.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID retrieves a book by id.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetAll retrieves all books, newest first.
	GetAll(ctx context.Context) ([]Book, error)

	// Update writes the full book row.
	// Errors: ErrBookNotFound.
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete removes a book by id.
	// Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
