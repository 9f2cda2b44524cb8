package social

import (
	"context"

	"plushhub/internal/domain"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID int64) error
	Delete(ctx context.Context, followerID, followeeID int64) (bool, error)
	FollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
	RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error)
}
