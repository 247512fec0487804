package query

import "errors"

var (
	// ErrUnknownField is returned when a field or category name has no accessor.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidOrder is returned for a sort order other than asc or desc.
	ErrInvalidOrder = errors.New("invalid sort order")
)
