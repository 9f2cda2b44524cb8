package photo

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

const (
	maxDescriptionLen = 500
	defaultPageSize   = 20
	maxPageSize       = 100
)

type Service struct {
	photos PhotoRepository
	toys   ToyChecker
	users  UserResolver
	images ImageStore
}

func NewService(photos PhotoRepository, toys ToyChecker, users UserResolver, images ImageStore) *Service {
	return &Service{photos: photos, toys: toys, users: users, images: images}
}

func (s *Service) toyExists(ctx context.Context, toyID int64) error {
	if _, err := s.toys.GetByID(ctx, toyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListForToy pages a toy's photos newest first; uploaderID of 0 means all
// uploaders.
func (s *Service) ListForToy(ctx context.Context, toyID, uploaderID int64, page, pageSize int) (*PhotoPage, error) {
	if err := s.toyExists(ctx, toyID); err != nil {
		return nil, err
	}
	if uploaderID > 0 {
		exists, err := s.users.Exists(ctx, uploaderID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	photos, total, err := s.photos.ListByToy(ctx, toyID, uploaderID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if err := s.populateUploaders(ctx, photos); err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return &PhotoPage{
		Items:      photos,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *Service) populateUploaders(ctx context.Context, photos []domain.Photo) error {
	ids := make([]int64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.UploaderID)
	}
	refs, err := s.users.RefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range photos {
		if ref, ok := refs[photos[i].UploaderID]; ok {
			photos[i].Uploader = &ref
		}
	}
	return nil
}

// Upload stores the image bytes behind the storage boundary and records
// the photo with the opaque URL. If the record write fails the freshly
// stored image is released again.
func (s *Service) Upload(ctx context.Context, toyID, uploaderID int64, ext string, image io.Reader, description string) (*domain.Photo, error) {
	description = strings.TrimSpace(description)
	if len(description) > maxDescriptionLen {
		return nil, ErrInvalidRequest
	}
	if err := s.toyExists(ctx, toyID); err != nil {
		return nil, err
	}

	url, err := s.images.Put(ctx, ext, image)
	if err != nil {
		return nil, ErrWriteFailed
	}

	p := &domain.Photo{
		ToyID:       toyID,
		UploaderID:  uploaderID,
		ImageURL:    url,
		Description: description,
	}
	if err := s.photos.Create(ctx, p); err != nil {
		if rmErr := s.images.Remove(ctx, url); rmErr != nil {
			log.Printf("image_release_failed url=%s error=%q", url, rmErr)
		}
		return nil, ErrWriteFailed
	}

	refs, err := s.users.RefsByIDs(ctx, []int64{uploaderID})
	if err != nil {
		return nil, err
	}
	if ref, ok := refs[uploaderID]; ok {
		p.Uploader = &ref
	}
	return p, nil
}

// Delete removes the photo record and best-effort releases the stored
// image. Allowed for the uploader or an admin.
func (s *Service) Delete(ctx context.Context, photoID, requesterID int64, requesterRole domain.UserRole) error {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if p.UploaderID != requesterID && requesterRole != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return ErrWriteFailed
	}

	if p.ImageURL != "" {
		if err := s.images.Remove(ctx, p.ImageURL); err != nil {
			log.Printf("image_release_failed photo_id=%d url=%s error=%q", photoID, p.ImageURL, err)
		}
	}
	return nil
}

func (s *Service) ToggleLike(ctx context.Context, photoID, userID int64) (*LikeResult, error) {
	if _, err := s.photos.GetByID(ctx, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, err := s.photos.ToggleLike(ctx, photoID, userID)
	if err != nil {
		return nil, ErrWriteFailed
	}

	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{IsLiked: liked, LikesCount: len(p.Likes)}, nil
}
