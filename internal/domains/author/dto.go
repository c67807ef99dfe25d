package author

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// emailPattern accepts "non-whitespace @ non-whitespace . non-whitespace".
// Deliberately loose: real uniqueness is enforced by the database, the
// application only rejects obviously malformed input.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Bio         *string `json:"bio,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	BirthYear   *int    `json:"birthYear,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
	)
}

// UpdateAuthorRequest - PUT /authors/:id
// All fields optional; only supplied fields are written (partial update).
type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	BirthYear   *int    `json:"birthYear,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty.Error("email must not be empty"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
	)
}

// ApplyTo copies the supplied fields onto an existing author.
func (r *UpdateAuthorRequest) ApplyTo(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Email != nil {
		a.Email = *r.Email
	}
	if r.Bio != nil {
		a.Bio = r.Bio
	}
	if r.Nationality != nil {
		a.Nationality = r.Nationality
	}
	if r.BirthYear != nil {
		a.BirthYear = r.BirthYear
	}
}

// DetailResponse - GET /authors/:id
// Author with nested books (newest published first) and book count.
type DetailResponse struct {
	Author
	Books     []AuthorBook `json:"books"`
	BookCount int          `json:"bookCount"`
}

// BooksResponse - GET /authors/:id/books
type BooksResponse struct {
	Author     BookListAuthor `json:"author"`
	TotalBooks int            `json:"totalBooks"`
	Books      []AuthorBook   `json:"books"`
}

type BookListAuthor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Stats - GET /authors/:id/stats
// Every field is derived independently from the author's book
// collection; books with null fields are skipped per field, not
// globally.
type Stats struct {
	AuthorID     uuid.UUID `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	TotalBooks   int       `json:"totalBooks"`
	FirstBook    *YearRef  `json:"firstBook"`
	LatestBook   *YearRef  `json:"latestBook"`
	AveragePages int       `json:"averagePages"`
	Genres       []string  `json:"genres"`
	LongestBook  *PagesRef `json:"longestBook"`
	ShortestBook *PagesRef `json:"shortestBook"`
}

// DeleteResponse - DELETE /authors/:id
type DeleteResponse struct {
	Message string `json:"message"`
}
