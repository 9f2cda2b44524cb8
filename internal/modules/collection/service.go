package collection

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"plushhub/internal/domain"
	"plushhub/internal/repository"
)

// Service mutates the relationship between one user and the toys in their
// membership containers. Only the owner may touch a container; at-most-once
// membership is the central invariant. Wishlist/favorites adds do not check
// that the toy exists — membership rows may reference toys that were never
// created, and reads skip them.
type Service struct {
	containers ContainerRepository
	lists      ListRepository
}

func NewService(containers ContainerRepository, lists ListRepository) *Service {
	return &Service{containers: containers, lists: lists}
}

func (s *Service) Add(ctx context.Context, ownerID, requesterID, toyID int64, kind domain.ContainerKind) error {
	if toyID <= 0 || !domain.ValidContainerKind(kind) {
		return ErrInvalidRequest
	}
	if ownerID != requesterID {
		return ErrForbidden
	}

	if err := s.containers.Add(ctx, ownerID, toyID, kind); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyMember
		}
		return err
	}
	return nil
}

// Remove filters the toy out of the container; removing a non-member is a
// successful no-op, which makes client retries safe.
func (s *Service) Remove(ctx context.Context, ownerID, requesterID, toyID int64, kind domain.ContainerKind) error {
	if toyID <= 0 || !domain.ValidContainerKind(kind) {
		return ErrInvalidRequest
	}
	if ownerID != requesterID {
		return ErrForbidden
	}
	return s.containers.Remove(ctx, ownerID, toyID, kind)
}

func (s *Service) CreateList(ctx context.Context, ownerID, requesterID int64, req CreateListRequest) (*domain.CustomList, error) {
	if ownerID != requesterID {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidRequest
	}

	list := &domain.CustomList{
		UserID:   ownerID,
		Name:     name,
		IsPublic: req.IsPublic,
	}
	if err := s.lists.Create(ctx, list, req.ToyID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return list, nil
}

func (s *Service) ownedList(ctx context.Context, ownerID, requesterID, listID int64) (*domain.CustomList, error) {
	if ownerID != requesterID {
		return nil, ErrForbidden
	}
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.UserID != ownerID {
		return nil, ErrNotFound
	}
	return list, nil
}

func (s *Service) AddToList(ctx context.Context, ownerID, requesterID, listID, toyID int64) (*domain.CustomList, error) {
	if toyID <= 0 {
		return nil, ErrInvalidRequest
	}
	list, err := s.ownedList(ctx, ownerID, requesterID, listID)
	if err != nil {
		return nil, err
	}

	if err := s.lists.AddItem(ctx, list.ID, toyID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return s.lists.GetByID(ctx, list.ID)
}

func (s *Service) RemoveFromList(ctx context.Context, ownerID, requesterID, listID, toyID int64) error {
	if toyID <= 0 {
		return ErrInvalidRequest
	}
	list, err := s.ownedList(ctx, ownerID, requesterID, listID)
	if err != nil {
		return err
	}
	return s.lists.RemoveItem(ctx, list.ID, toyID)
}

func (s *Service) DeleteList(ctx context.Context, ownerID, requesterID, listID int64) error {
	list, err := s.ownedList(ctx, ownerID, requesterID, listID)
	if err != nil {
		return err
	}
	return s.lists.Delete(ctx, list.ID)
}

// Lists returns a user's custom lists; non-owners only see public ones.
func (s *Service) Lists(ctx context.Context, ownerID, requesterID int64) ([]domain.CustomList, error) {
	lists, err := s.lists.ListByUser(ctx, ownerID, ownerID != requesterID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []domain.CustomList{}
	}
	return lists, nil
}
