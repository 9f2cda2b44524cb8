package collection

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyMember  = errors.New("already_member")
	ErrDuplicateName  = errors.New("duplicate_name")
)
