package book

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// requiredUUID rejects the zero uuid. validation.Required cannot: a
// uuid.UUID is a fixed-size byte array and never counts as empty.
func requiredUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("is required")
	}
	return nil
}

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	ISBN          *string   `json:"isbn,omitempty"`
	PublishedYear *int      `json:"publishedYear,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	Pages         *int      `json:"pages,omitempty"`
	AuthorID      uuid.UUID `json:"authorId"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.AuthorID,
			validation.By(requiredUUID),
		),
	)
}

// UpdateBookRequest - PUT /books/:id
// All fields optional; only supplied fields change.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	ISBN          *string `json:"isbn,omitempty"`
	PublishedYear *int    `json:"publishedYear,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	Pages         *int    `json:"pages,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, 500),
		),
	)
}

// ApplyTo copies the supplied fields onto an existing book.
func (r *UpdateBookRequest) ApplyTo(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Description != nil {
		b.Description = r.Description
	}
	if r.ISBN != nil {
		b.ISBN = r.ISBN
	}
	if r.PublishedYear != nil {
		b.PublishedYear = r.PublishedYear
	}
	if r.Genre != nil {
		b.Genre = r.Genre
	}
	if r.Pages != nil {
		b.Pages = r.Pages
	}
}

// SearchResponse - GET /books/search
type SearchResponse struct {
	Data       []BookWithAuthor `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// DeleteResponse - DELETE /books/:id
type DeleteResponse struct {
	Message string `json:"message"`
}
