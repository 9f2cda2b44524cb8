package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type ToyFilter struct {
	Category string
	Brand    string
}

type ToyRepository struct {
	db *gorm.DB
}

func NewToyRepository(db *gorm.DB) *ToyRepository {
	return &ToyRepository{db: db}
}

// CreateWithOwner inserts the toy and the creator's owned-collection row in
// one transaction. If either write fails neither is applied, so a toy
// without an owner (or the reverse) is never observable.
func (r *ToyRepository) CreateWithOwner(ctx context.Context, t *domain.Toy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		item := domain.CollectionItem{
			UserID: t.CreatorID,
			ToyID:  t.ID,
			Kind:   domain.ContainerOwned,
		}
		return tx.Create(&item).Error
	})
}

// DeleteCascade removes the toy and every membership row referencing it
// (all containers, custom-list items, likes, reviews) in one transaction.
// Returns gorm.ErrRecordNotFound when the toy does not exist.
func (r *ToyRepository) DeleteCascade(ctx context.Context, toyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("toy_id = ?", toyID).Delete(&domain.CollectionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("toy_id = ?", toyID).Delete(&domain.CustomListItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("toy_id = ?", toyID).Delete(&domain.ToyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("toy_id = ?", toyID).Delete(&domain.ToyReview{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Toy{}, toyID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ToyRepository) GetByID(ctx context.Context, id int64) (*domain.Toy, error) {
	var t domain.Toy
	err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Reviews").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ToyRepository) Update(ctx context.Context, t *domain.Toy) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ToyRepository) applyFilter(q *gorm.DB, f ToyFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	return q
}

// List returns one page of toys plus the total match count. orderExpr is a
// validated "column DIR" expression built by the catalog service from its
// enumerated sort keys; raw client input never reaches this method.
func (r *ToyRepository) List(ctx context.Context, f ToyFilter, orderExpr string, page, pageSize int) ([]domain.Toy, int64, error) {
	var total int64
	base := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Toy{}), f)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var toys []domain.Toy
	q := r.applyFilter(r.db.WithContext(ctx), f).
		Order(orderExpr).
		Limit(pageSize).
		Offset((page - 1) * pageSize)
	if err := q.Find(&toys).Error; err != nil {
		return nil, 0, err
	}
	return toys, total, nil
}

// Available lists toys not present in any user's owned collection. The
// NOT IN subquery replaces the original's load-all-users union scan but
// keeps the same linear cost shape.
func (r *ToyRepository) Available(ctx context.Context, f ToyFilter, orderExpr string, page, pageSize int) ([]domain.Toy, int64, error) {
	owned := r.db.Model(&domain.CollectionItem{}).
		Select("toy_id").
		Where("kind = ?", domain.ContainerOwned)

	var total int64
	base := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Toy{}), f).
		Where("id NOT IN (?)", owned)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var toys []domain.Toy
	q := r.applyFilter(r.db.WithContext(ctx), f).
		Where("id NOT IN (?)", owned).
		Order(orderExpr).
		Limit(pageSize).
		Offset((page - 1) * pageSize)
	if err := q.Find(&toys).Error; err != nil {
		return nil, 0, err
	}
	return toys, total, nil
}

// ByIDs batch-dereferences toy ids. Dangling ids are silently dropped.
func (r *ToyRepository) ByIDs(ctx context.Context, ids []int64) ([]domain.Toy, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var toys []domain.Toy
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&toys).Error
	return toys, err
}

// ToggleLike flips userID's membership in the toy's like set and reports
// the resulting state. Each call is a single-row mutation, so two toggles
// by the same user always round-trip to the original state.
func (r *ToyRepository) ToggleLike(ctx context.Context, toyID, userID int64) (liked bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("toy_id = ? AND user_id = ?", toyID, userID).Delete(&domain.ToyLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Create(&domain.ToyLike{ToyID: toyID, UserID: userID}).Error
	})
	return liked, err
}

// UpsertReview replaces or appends userID's review and recomputes the
// toy's denormalized rating as the float mean of all reviews, atomically
// with the review write.
func (r *ToyRepository) UpsertReview(ctx context.Context, toyID, userID int64, rating int, comment string) (*domain.Toy, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ToyReview
		err := tx.Where("toy_id = ? AND user_id = ?", toyID, userID).First(&existing).Error
		switch {
		case err == nil:
			existing.Rating = rating
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rv := domain.ToyReview{ToyID: toyID, UserID: userID, Rating: rating, Comment: comment}
			if err := tx.Create(&rv).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var mean float64
		err = tx.Model(&domain.ToyReview{}).
			Where("toy_id = ?", toyID).
			Select("AVG(rating)").
			Scan(&mean).Error
		if err != nil {
			return err
		}

		return tx.Model(&domain.Toy{}).Where("id = ?", toyID).Update("rating", mean).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}
	return r.GetByID(ctx, toyID)
}
