package profile

import (
	"context"

	"plushhub/internal/domain"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ToyReader interface {
	ByIDs(ctx context.Context, ids []int64) ([]domain.Toy, error)
}

type ContainerReader interface {
	ToyIDs(ctx context.Context, userID int64, kind domain.ContainerKind) ([]int64, error)
}

type ListReader interface {
	ListByUser(ctx context.Context, userID int64, publicOnly bool) ([]domain.CustomList, error)
}

type FollowCounter interface {
	Counts(ctx context.Context, userID int64) (followers, following int64, err error)
}
