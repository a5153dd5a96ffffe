package models

import "errors"

// Sentinel errors shared across the persistence and service layers.
// Handlers branch on these with errors.Is to pick a redirect or flash.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail means a user with that email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateTitle means a post with that title already exists.
	ErrDuplicateTitle = errors.New("post title already taken")
)
