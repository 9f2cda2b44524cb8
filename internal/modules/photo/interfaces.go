package photo

import (
	"context"
	"io"

	"plushhub/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) error
	GetByID(ctx context.Context, id int64) (*domain.Photo, error)
	ListByToy(ctx context.Context, toyID, uploaderID int64, page, pageSize int) ([]domain.Photo, int64, error)
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, photoID, userID int64) (bool, error)
}

type ToyChecker interface {
	GetByID(ctx context.Context, id int64) (*domain.Toy, error)
}

type UserResolver interface {
	Exists(ctx context.Context, id int64) (bool, error)
	RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error)
}

type ImageStore interface {
	Put(ctx context.Context, ext string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}
