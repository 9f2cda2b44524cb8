package catalog

import (
	"context"

	"plushhub/internal/domain"
	"plushhub/internal/repository"
)

type ToyRepository interface {
	CreateWithOwner(ctx context.Context, t *domain.Toy) error
	DeleteCascade(ctx context.Context, toyID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Toy, error)
	Update(ctx context.Context, t *domain.Toy) error
	List(ctx context.Context, f repository.ToyFilter, orderExpr string, page, pageSize int) ([]domain.Toy, int64, error)
	Available(ctx context.Context, f repository.ToyFilter, orderExpr string, page, pageSize int) ([]domain.Toy, int64, error)
	ByIDs(ctx context.Context, ids []int64) ([]domain.Toy, error)
	ToggleLike(ctx context.Context, toyID, userID int64) (bool, error)
	UpsertReview(ctx context.Context, toyID, userID int64, rating int, comment string) (*domain.Toy, error)
}

type CollectionReader interface {
	ToyIDs(ctx context.Context, userID int64, kind domain.ContainerKind) ([]int64, error)
}

type UserRefResolver interface {
	RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error)
}

// ImageReleaser is the slice of the storage boundary the catalog needs:
// best-effort deletion of a toy's stored image after the toy is gone.
type ImageReleaser interface {
	Remove(ctx context.Context, url string) error
}
