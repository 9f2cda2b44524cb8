package repository

import (
	"context"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	var p domain.Photo
	err := r.db.WithContext(ctx).Preload("Likes").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByToy pages a toy's photos newest first; uploaderID of 0 means all
// uploaders.
func (r *PhotoRepository) ListByToy(ctx context.Context, toyID, uploaderID int64, page, pageSize int) ([]domain.Photo, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Photo{}).Where("toy_id = ?", toyID)
	if uploaderID > 0 {
		q = q.Where("uploader_id = ?", uploaderID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var photos []domain.Photo
	err := q.Preload("Likes").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&domain.PhotoLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Photo{}, id).Error
	})
}

func (r *PhotoRepository) ToggleLike(ctx context.Context, photoID, userID int64) (liked bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("photo_id = ? AND user_id = ?", photoID, userID).Delete(&domain.PhotoLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Create(&domain.PhotoLike{PhotoID: photoID, UserID: userID}).Error
	})
	return liked, err
}
