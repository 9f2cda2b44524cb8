package message

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrSelfMessage    = errors.New("self_message")
	ErrNotFound       = errors.New("not_found")
	ErrForbidden      = errors.New("forbidden")
)
