package gofunc

import "errors"

// Errors
var (
	ErrInvalidTreeShape = errors.New("invalid level sequence for a rooted tree")
	ErrInvalidSize      = errors.New("invalid enumeration size")
	ErrInvalidCount     = errors.New("multiplicity must be a positive integer")
	ErrEmptyContent     = errors.New("necklace content must be non-empty")
	ErrInvalidFunc      = errors.New("function values must lie within its domain")
	ErrNotInvertible    = errors.New("function is not invertible")
	ErrTypeMismatch     = errors.New("value has the wrong type for this constructor")
	ErrUnmarshal        = errors.New("unmarshal failed")
)
