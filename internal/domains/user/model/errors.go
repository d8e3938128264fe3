package model

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
