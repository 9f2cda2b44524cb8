package repository

import (
	"context"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create stores the follow edge. The single row backs both users'
// followers/following views, so there is no window where only one side of
// the relationship exists. ErrDuplicate when the edge is already present.
func (r *FollowRepository) Create(ctx context.Context, followerID, followeeID int64) error {
	exists, err := r.Exists(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	edge := domain.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the edge; reports whether it existed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepository) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("followee_id = ?", userID).
		Order("created_at ASC").
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at ASC").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *FollowRepository) Counts(ctx context.Context, userID int64) (followers, following int64, err error) {
	err = r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("followee_id = ?", userID).
		Count(&followers).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error
	return followers, following, err
}
