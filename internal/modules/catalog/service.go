package catalog

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"plushhub/internal/domain"
	"plushhub/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortColumns is the enumerated set of listing sort keys; anything else is
// rejected instead of being passed through to the order-by.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"rating":     "rating",
	"name":       "name",
}

type Service struct {
	toys        ToyRepository
	collections CollectionReader
	users       UserRefResolver
	images      ImageReleaser
}

func NewService(toys ToyRepository, collections CollectionReader, users UserRefResolver, images ImageReleaser) *Service {
	return &Service{toys: toys, collections: collections, users: users, images: images}
}

// Create inserts the toy and attaches it to the creator's owned collection
// in one transaction. On failure neither write is applied and the caller
// sees a single write-failed error.
func (s *Service) Create(ctx context.Context, creatorID int64, req CreateToyRequest) (*domain.Toy, error) {
	if creatorID <= 0 || req.Price < 0 {
		return nil, ErrInvalidRequest
	}
	category := domain.ToyCategory(req.Category)
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	toy := &domain.Toy{
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Category:    category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.Image,
		CreatorID:   creatorID,
	}
	if toy.Name == "" || toy.Brand == "" {
		return nil, ErrInvalidRequest
	}

	if err := s.toys.CreateWithOwner(ctx, toy); err != nil {
		return nil, ErrWriteFailed
	}
	return toy, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Toy, error) {
	toy, err := s.toys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.populateRefs(ctx, toy)
}

// populateRefs resolves the creator and reviewer projections in one batch
// lookup. Unresolvable reviewer ids keep a nil ref rather than erroring.
func (s *Service) populateRefs(ctx context.Context, toy *domain.Toy) (*domain.Toy, error) {
	ids := make([]int64, 0, len(toy.Reviews)+1)
	ids = append(ids, toy.CreatorID)
	for _, rv := range toy.Reviews {
		ids = append(ids, rv.UserID)
	}

	refs, err := s.users.RefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if ref, ok := refs[toy.CreatorID]; ok {
		toy.Creator = &ref
	}
	for i := range toy.Reviews {
		if ref, ok := refs[toy.Reviews[i].UserID]; ok {
			toy.Reviews[i].User = &ref
		}
	}
	return toy, nil
}

func (s *Service) normalize(q ListQuery) (repository.ToyFilter, string, int, int, error) {
	if q.Category != "" && !domain.ValidCategory(domain.ToyCategory(q.Category)) {
		return repository.ToyFilter{}, "", 0, 0, ErrInvalidCategory
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return repository.ToyFilter{}, "", 0, 0, ErrInvalidSort
	}

	direction := "DESC"
	switch strings.ToLower(q.Order) {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return repository.ToyFilter{}, "", 0, 0, ErrInvalidSort
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	f := repository.ToyFilter{Category: q.Category, Brand: q.Brand}
	return f, column + " " + direction, page, pageSize, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ToyPage, error) {
	f, order, page, pageSize, err := s.normalize(q)
	if err != nil {
		return nil, err
	}
	items, total, err := s.toys.List(ctx, f, order, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toPage(items, total, page, pageSize), nil
}

// Available lists toys not held in any user's owned collection, with the
// same filter/sort/pagination as List.
func (s *Service) Available(ctx context.Context, q ListQuery) (*ToyPage, error) {
	f, order, page, pageSize, err := s.normalize(q)
	if err != nil {
		return nil, err
	}
	items, total, err := s.toys.Available(ctx, f, order, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toPage(items, total, page, pageSize), nil
}

func toPage(items []domain.Toy, total int64, page, pageSize int) *ToyPage {
	if items == nil {
		items = []domain.Toy{}
	}
	return &ToyPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}

// ByUser returns the toys in userID's owned collection. Ids that no longer
// resolve to a toy are dropped.
func (s *Service) ByUser(ctx context.Context, userID int64) ([]domain.Toy, error) {
	ids, err := s.collections.ToyIDs(ctx, userID, domain.ContainerOwned)
	if err != nil {
		return nil, err
	}
	toys, err := s.toys.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if toys == nil {
		toys = []domain.Toy{}
	}
	return toys, nil
}

func (s *Service) Update(ctx context.Context, toyID, requesterID int64, req UpdateToyRequest) (*domain.Toy, error) {
	category := domain.ToyCategory(req.Category)
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if req.Price < 0 {
		return nil, ErrInvalidRequest
	}

	toy, err := s.toys.GetByID(ctx, toyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if toy.CreatorID != requesterID {
		return nil, ErrForbidden
	}

	toy.Name = strings.TrimSpace(req.Name)
	toy.Brand = strings.TrimSpace(req.Brand)
	toy.Category = category
	toy.Description = req.Description
	toy.Price = req.Price

	if err := s.toys.Update(ctx, toy); err != nil {
		return nil, ErrWriteFailed
	}
	return toy, nil
}

// Delete removes the toy and every membership row referencing it in one
// transaction, then best-effort releases the stored image. Image release
// failure is logged, never surfaced: the transactional guarantee covers
// only the document writes.
func (s *Service) Delete(ctx context.Context, toyID, requesterID int64) error {
	toy, err := s.toys.GetByID(ctx, toyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if toy.CreatorID != requesterID {
		return ErrForbidden
	}

	if err := s.toys.DeleteCascade(ctx, toyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrWriteFailed
	}

	if toy.ImageURL != "" && s.images != nil {
		if err := s.images.Remove(ctx, toy.ImageURL); err != nil {
			log.Printf("image_release_failed toy_id=%d url=%s error=%q", toyID, toy.ImageURL, err)
		}
	}
	return nil
}

func (s *Service) ToggleLike(ctx context.Context, toyID, userID int64) (*LikeResult, error) {
	if _, err := s.toys.GetByID(ctx, toyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, err := s.toys.ToggleLike(ctx, toyID, userID)
	if err != nil {
		return nil, ErrWriteFailed
	}

	toy, err := s.Get(ctx, toyID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Toy: toy, IsLiked: liked}, nil
}

// UpsertReview replaces or appends the user's review and recomputes the
// toy's rating as the float mean, atomically with the review write.
func (s *Service) UpsertReview(ctx context.Context, toyID, userID int64, req ReviewRequest) (*domain.Toy, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.toys.GetByID(ctx, toyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	toy, err := s.toys.UpsertReview(ctx, toyID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, ErrWriteFailed
	}
	return s.populateRefs(ctx, toy)
}
