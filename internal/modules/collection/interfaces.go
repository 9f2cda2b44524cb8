package collection

import (
	"context"

	"plushhub/internal/domain"
)

type ContainerRepository interface {
	Add(ctx context.Context, userID, toyID int64, kind domain.ContainerKind) error
	Remove(ctx context.Context, userID, toyID int64, kind domain.ContainerKind) error
	ToyIDs(ctx context.Context, userID int64, kind domain.ContainerKind) ([]int64, error)
}

type ListRepository interface {
	Create(ctx context.Context, list *domain.CustomList, initialToyID int64) error
	GetByID(ctx context.Context, id int64) (*domain.CustomList, error)
	ListByUser(ctx context.Context, userID int64, publicOnly bool) ([]domain.CustomList, error)
	AddItem(ctx context.Context, listID, toyID int64) error
	RemoveItem(ctx context.Context, listID, toyID int64) error
	Delete(ctx context.Context, listID int64) error
}
