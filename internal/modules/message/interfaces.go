package message

import (
	"context"

	"plushhub/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ForUser(ctx context.Context, userID int64) ([]domain.Message, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type UserResolver interface {
	Exists(ctx context.Context, id int64) (bool, error)
	RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error)
}

// EventPusher delivers realtime events to a connected user; delivery is
// best-effort and never blocks the send path.
type EventPusher interface {
	Push(userID int64, event *Event)
}
