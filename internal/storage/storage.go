package storage

import "errors"

var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrTypeNotFound     = errors.New("expense type not found")
	ErrCategoryMismatch = errors.New("category does not match expense type")
)
