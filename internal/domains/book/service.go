package book

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business operations of the book domain.
type Service interface {
	// Search validates and normalizes the raw parameters, runs the
	// query, and attaches pagination metadata.
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)

	// Create creates a new book under an existing author.
	// Errors: ErrAuthorNotFound.
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)

	// GetByID retrieves a single book.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetAll lists all books, newest first.
	GetAll(ctx context.Context) ([]Book, error)

	// Update applies a partial update: only supplied fields change.
	// Errors: ErrBookNotFound.
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookRequest) (*Book, error)

	// Delete removes a book.
	// Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
