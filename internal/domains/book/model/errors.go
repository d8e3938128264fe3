package model

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateISBN  = errors.New("isbn already belongs to another book")
	ErrAuthorNotFound = errors.New("referenced author does not exist")
)
