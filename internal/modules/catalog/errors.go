package catalog

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidSort     = errors.New("invalid_sort")
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrWriteFailed     = errors.New("write_failed")
)
