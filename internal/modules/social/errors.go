package social

import "errors"

var (
	ErrSelfFollow       = errors.New("self_follow")
	ErrAlreadyFollowing = errors.New("already_following")
	ErrNotFollowing     = errors.New("not_following")
	ErrNotFound         = errors.New("not_found")
)
