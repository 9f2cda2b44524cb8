package repository

import (
	"context"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

// CollectionRepository работает с контейнерами пользователя
// (owned / wishlist / favorites).
type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Add вставляет одну запись членства. Возвращает ErrDuplicate если игрушка
// уже в этом контейнере — uniqueIndex закрывает и гонку между проверкой и
// вставкой.
func (r *CollectionRepository) Add(ctx context.Context, userID, toyID int64, kind domain.ContainerKind) error {
	exists, err := r.Exists(ctx, userID, toyID, kind)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	item := domain.CollectionItem{UserID: userID, ToyID: toyID, Kind: kind}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Remove удаляет запись членства. Отсутствие записи не ошибка — операция
// идемпотентна.
func (r *CollectionRepository) Remove(ctx context.Context, userID, toyID int64, kind domain.ContainerKind) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND toy_id = ? AND kind = ?", userID, toyID, kind).
		Delete(&domain.CollectionItem{}).Error
}

func (r *CollectionRepository) Exists(ctx context.Context, userID, toyID int64, kind domain.ContainerKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CollectionItem{}).
		Where("user_id = ? AND toy_id = ? AND kind = ?", userID, toyID, kind).
		Count(&count).Error
	return count > 0, err
}

// ToyIDs возвращает идентификаторы игрушек в контейнере, старые первыми
// (порядок добавления).
func (r *CollectionRepository) ToyIDs(ctx context.Context, userID int64, kind domain.ContainerKind) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.CollectionItem{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at ASC").
		Pluck("toy_id", &ids).Error
	return ids, err
}

func (r *CollectionRepository) Count(ctx context.Context, userID int64, kind domain.ContainerKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CollectionItem{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count).Error
	return count, err
}
