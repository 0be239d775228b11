package errors

import "errors"

// ErrConflict marks a write rejected by a store uniqueness invariant.
var ErrConflict = errors.New("record conflicts with an existing one")
