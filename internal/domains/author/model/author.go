package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const MaxNameLength = 255

// Validate enforces the author invariants: name present and bounded.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
}

type CreateAuthorRequest struct {
	Name string `json:"name"`
}

type UpdateAuthorRequest struct {
	Name string `json:"name"`
}

// AuthorFilter drives listing pagination and sorting.
type AuthorFilter struct {
	Limit  int
	Offset int
	SortBy string
	Order  string
}
