package model

import "errors"

var (
	ErrAlreadySubscribed    = errors.New("phone is already subscribed to this author")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAuthorNotFound       = errors.New("author not found")
	ErrInvalidPhone         = errors.New("phone number is invalid")
)
