package auth

import (
	"context"

	"plushhub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}
