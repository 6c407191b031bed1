package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrVersionConflict indicates a queued update lost a concurrent
	// write race; the caller may reload and retry.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("repository: duplicate email")
)
