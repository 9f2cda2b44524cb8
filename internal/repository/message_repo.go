package repository

import (
	"context"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ForUser returns every message the user sent or received, newest first.
func (r *MessageRepository) ForUser(ctx context.Context, userID int64) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Message{}, id).Error
}
