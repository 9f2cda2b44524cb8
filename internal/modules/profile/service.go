package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

var ErrNotFound = errors.New("not_found")

// Service builds read-side views: the fully populated profile and the user
// directory. Container ids are dereferenced by batch lookup; ids with no
// matching toy are silently dropped, so dangling references degrade
// gracefully instead of erroring.
type Service struct {
	users      UserReader
	toys       ToyReader
	containers ContainerReader
	lists      ListReader
	follows    FollowCounter
}

func NewService(users UserReader, toys ToyReader, containers ContainerReader, lists ListReader, follows FollowCounter) *Service {
	return &Service{users: users, toys: toys, containers: containers, lists: lists, follows: follows}
}

func (s *Service) Get(ctx context.Context, userID, requesterID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	p := &Profile{User: user}

	if p.Owned, err = s.populate(ctx, userID, domain.ContainerOwned); err != nil {
		return nil, err
	}
	if p.Wishlist, err = s.populate(ctx, userID, domain.ContainerWishlist); err != nil {
		return nil, err
	}
	if p.Favorites, err = s.populate(ctx, userID, domain.ContainerFavorites); err != nil {
		return nil, err
	}

	lists, err := s.lists.ListByUser(ctx, userID, userID != requesterID)
	if err != nil {
		return nil, err
	}
	p.Lists = make([]PopulatedList, 0, len(lists))
	for _, list := range lists {
		ids := make([]int64, 0, len(list.Items))
		for _, item := range list.Items {
			ids = append(ids, item.ToyID)
		}
		toys, err := s.deref(ctx, ids)
		if err != nil {
			return nil, err
		}
		p.Lists = append(p.Lists, PopulatedList{
			ID:        list.ID,
			Name:      list.Name,
			IsPublic:  list.IsPublic,
			CreatedAt: list.CreatedAt.Format(time.RFC3339),
			Toys:      toys,
		})
	}

	if p.Followers, p.Following, err = s.follows.Counts(ctx, userID); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) populate(ctx context.Context, userID int64, kind domain.ContainerKind) ([]domain.Toy, error) {
	ids, err := s.containers.ToyIDs(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	return s.deref(ctx, ids)
}

// deref resolves ids to toys preserving container order; missing ids are
// dropped.
func (s *Service) deref(ctx context.Context, ids []int64) ([]domain.Toy, error) {
	toys, err := s.toys.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Toy, len(toys))
	for _, t := range toys {
		byID[t.ID] = t
	}

	out := make([]domain.Toy, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
