package social

import (
	"context"
	"errors"

	"plushhub/internal/domain"
	"plushhub/internal/repository"
)

// Service manages the follow graph. An edge is stored exactly once, so the
// follower's "following" view and the target's "followers" view can never
// disagree.
type Service struct {
	follows FollowRepository
	users   UserChecker
}

func NewService(follows FollowRepository, users UserChecker) *Service {
	return &Service{follows: follows, users: users}
}

func (s *Service) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return ErrSelfFollow
	}

	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.follows.Create(ctx, followerID, targetID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return ErrSelfFollow
	}

	removed, err := s.follows.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

func (s *Service) Followers(ctx context.Context, userID int64) ([]domain.UserRef, error) {
	ids, err := s.follows.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *Service) Following(ctx context.Context, userID int64) ([]domain.UserRef, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *Service) resolve(ctx context.Context, ids []int64) ([]domain.UserRef, error) {
	refs, err := s.users.RefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}
