package repository

import (
	"context"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type CustomListRepository struct {
	db *gorm.DB
}

func NewCustomListRepository(db *gorm.DB) *CustomListRepository {
	return &CustomListRepository{db: db}
}

// Create inserts the list and, when initialToyID is set, its first item in
// one transaction. Returns ErrDuplicate on a per-user name collision
// (case-sensitive, the caller trims).
func (r *CustomListRepository) Create(ctx context.Context, list *domain.CustomList, initialToyID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		if initialToyID > 0 {
			item := domain.CustomListItem{ListID: list.ID, ToyID: initialToyID}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			list.Items = []domain.CustomListItem{item}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CustomListRepository) GetByID(ctx context.Context, id int64) (*domain.CustomList, error) {
	var list domain.CustomList
	err := r.db.WithContext(ctx).Preload("Items").First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *CustomListRepository) ListByUser(ctx context.Context, userID int64, publicOnly bool) ([]domain.CustomList, error) {
	q := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	var lists []domain.CustomList
	err := q.Order("created_at ASC").Find(&lists).Error
	return lists, err
}

func (r *CustomListRepository) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CustomList{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

// AddItem appends a toy to the list; ErrDuplicate when already present.
func (r *CustomListRepository) AddItem(ctx context.Context, listID, toyID int64) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CustomListItem{}).
		Where("list_id = ? AND toy_id = ?", listID, toyID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	item := domain.CustomListItem{ListID: listID, ToyID: toyID}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveItem is idempotent: removing an absent toy is a no-op.
func (r *CustomListRepository) RemoveItem(ctx context.Context, listID, toyID int64) error {
	return r.db.WithContext(ctx).
		Where("list_id = ? AND toy_id = ?", listID, toyID).
		Delete(&domain.CustomListItem{}).Error
}

func (r *CustomListRepository) Delete(ctx context.Context, listID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&domain.CustomListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.CustomList{}, listID).Error
	})
}
