package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Book struct {
	ID              int64        `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Description     *string      `json:"description,omitempty" db:"description"`
	PublicationYear int          `json:"publication_year" db:"publication_year"`
	ISBN            *string      `json:"isbn,omitempty" db:"isbn"`
	CoverImage      *string      `json:"-" db:"cover_image"`
	CoverURL        string       `json:"cover_url" db:"-"`
	Authors         []BookAuthor `json:"authors" db:"-"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// BookAuthor is the author projection embedded in book payloads.
type BookAuthor struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

const (
	MaxTitleLength = 255
	MaxISBNLength  = 13
	MinYear        = 1000
)

// Validate enforces the structural invariants. ISBN uniqueness needs a
// database round trip and is checked by the service.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&b.PublicationYear,
			validation.Required,
			validation.Min(MinYear),
			validation.Max(time.Now().Year()),
		),
		validation.Field(&b.ISBN, validation.Length(1, MaxISBNLength)),
	)
}

type CreateBookRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	PublicationYear int     `json:"publication_year"`
	ISBN            *string `json:"isbn"`
	AuthorIDs       []int64 `json:"author_ids"`
}

type UpdateBookRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	PublicationYear int     `json:"publication_year"`
	ISBN            *string `json:"isbn"`
	AuthorIDs       []int64 `json:"author_ids"`
}

// BookFilter drives listing pagination and sorting.
type BookFilter struct {
	Limit  int
	Offset int
	SortBy string
	Order  string
}
