package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AuthorSubscription struct {
	ID       int64 `json:"id" db:"id"`
	AuthorID int64 `json:"author_id" db:"author_id"`
	// UserID links the subscription to an account when the subscriber was
	// logged in; guest subscriptions leave it empty.
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var (
	// storedPhonePattern is the storage-level shape: digits with an optional
	// leading plus.
	storedPhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	// russianPhonePattern is the stricter entry-point check applied to user
	// input after normalization.
	russianPhonePattern = regexp.MustCompile(`^\+?[78]\d{10}$`)

	nonPhoneChars = regexp.MustCompile(`[^0-9+]`)
)

// Validate enforces the stored subscription invariants.
func (s AuthorSubscription) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.AuthorID, validation.Required),
		validation.Field(&s.Phone,
			validation.Required,
			validation.Match(storedPhonePattern),
		),
	)
}

// NormalizePhone strips everything except digits and a plus sign, so
// "+7 (912) 345-67-89" and "+79123456789" compare equal.
func NormalizePhone(raw string) string {
	return nonPhoneChars.ReplaceAllString(strings.TrimSpace(raw), "")
}

// IsValidRussianPhone checks a normalized phone against the Russian mobile
// format: optional plus, then 7 or 8, then ten digits.
func IsValidRussianPhone(phone string) bool {
	return russianPhonePattern.MatchString(phone)
}

type SubscribeRequest struct {
	Phone string `json:"phone"`
}
