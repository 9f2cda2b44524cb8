package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// RefsByIDs returns the short {name, image} projection for a batch of user
// ids. Missing ids are simply absent from the map.
func (r *UserRepository) RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error) {
	refs := make(map[int64]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	var users []domain.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "image_url").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		refs[u.ID] = domain.UserRef{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
	}
	return refs, nil
}
