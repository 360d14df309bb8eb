package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound = errors.New("model not found")
	ErrConflict = errors.New("conflicting concurrent update")
	ErrClosed   = errors.New("store is closed")
)
