// Package apperr holds sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrNotLoaded     = errors.New("catalog not loaded")
)
