package domain

import "errors"

// Error kinds. Callers wrap them with context and match with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrStoreFailure    = errors.New("store failure")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotConfigured   = errors.New("not configured")
	ErrUpstream        = errors.New("upstream service failure")
)
