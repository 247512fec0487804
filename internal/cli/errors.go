package cli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrNotConfirmed = errors.New("refusing to clear the collection without --yes")
	ErrDecode       = errors.New("decode wines")
)
