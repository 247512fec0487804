package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("wine not found")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrClosed         = errors.New("store closed")
	ErrDuplicateID    = errors.New("duplicate wine id")
)
