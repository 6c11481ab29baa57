package repositories

import "errors"

// ErrNotFound is returned by every repository when no row matches.
var ErrNotFound = errors.New("record not found")
