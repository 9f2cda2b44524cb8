package photo

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrForbidden      = errors.New("forbidden")
	ErrWriteFailed    = errors.New("write_failed")
)
