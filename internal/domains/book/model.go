package book

import (
	"time"

	"github.com/google/uuid"
)

// Book is the core catalog entity. Every book belongs to exactly one
// author; optional fields are pointers so nulls survive the round-trip
// to the store.
type Book struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"` // Required

	Description   *string `json:"description"`
	ISBN          *string `json:"isbn"`
	PublishedYear *int    `json:"publishedYear"`
	Genre         *string `json:"genre"`
	Pages         *int    `json:"pages"`

	AuthorID uuid.UUID `json:"authorId"` // Required reference

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmbeddedAuthor is the owning author as embedded in search results.
type EmbeddedAuthor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BookWithAuthor is a search result row.
type BookWithAuthor struct {
	Book
	Author EmbeddedAuthor `json:"author"`
}
