package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the core domain entity. A single author owns zero or more
// books; the book side holds the reference.
type Author struct {
	ID uuid.UUID `json:"id"`

	Name  string `json:"name"`  // Required
	Email string `json:"email"` // Required, unique across authors

	// Optional details
	Bio         *string `json:"bio"`
	Nationality *string `json:"nationality"`
	BirthYear   *int    `json:"birthYear"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorBook is a book row as exposed under an author. Declared here so
// the author domain does not depend on the book domain.
type AuthorBook struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	ISBN          *string   `json:"isbn"`
	PublishedYear *int      `json:"publishedYear"`
	Genre         *string   `json:"genre"`
	Pages         *int      `json:"pages"`
	AuthorID      uuid.UUID `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// YearRef is a book reference selected by published year.
type YearRef struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// PagesRef is a book reference selected by page count.
type PagesRef struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}
