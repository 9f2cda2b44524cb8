package message

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"plushhub/internal/domain"
)

const maxContentLen = 1000

type Service struct {
	messages MessageRepository
	users    UserResolver
	events   EventPusher
}

func NewService(messages MessageRepository, users UserResolver, events EventPusher) *Service {
	return &Service{messages: messages, users: users, events: events}
}

func (s *Service) Send(ctx context.Context, senderID int64, req SendRequest) (*domain.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > maxContentLen {
		return nil, ErrInvalidRequest
	}
	if senderID == req.RecipientID {
		return nil, ErrSelfMessage
	}

	exists, err := s.users.Exists(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	m := &domain.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     content,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.populateRefs(ctx, []*domain.Message{m}); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Push(req.RecipientID, &Event{Type: EventNewMessage, Payload: m})
	}
	return m, nil
}

// Inbox returns every message the user sent or received, newest first,
// with both parties projected to {name, image}.
func (s *Service) Inbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	messages, err := s.messages.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ptrs := make([]*domain.Message, len(messages))
	for i := range messages {
		ptrs[i] = &messages[i]
	}
	if err := s.populateRefs(ctx, ptrs); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *Service) populateRefs(ctx context.Context, messages []*domain.Message) error {
	ids := make([]int64, 0, len(messages)*2)
	for _, m := range messages {
		ids = append(ids, m.SenderID, m.RecipientID)
	}
	refs, err := s.users.RefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, m := range messages {
		if ref, ok := refs[m.SenderID]; ok {
			m.Sender = &ref
		}
		if ref, ok := refs[m.RecipientID]; ok {
			m.Recipient = &ref
		}
	}
	return nil
}

// Get is restricted to the two parties of the message.
func (s *Service) Get(ctx context.Context, messageID, requesterID int64) (*domain.Message, error) {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.SenderID != requesterID && m.RecipientID != requesterID {
		return nil, ErrForbidden
	}
	if err := s.populateRefs(ctx, []*domain.Message{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// MarkRead flips the only mutable flag; recipient-only.
func (s *Service) MarkRead(ctx context.Context, messageID, requesterID int64) error {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if m.RecipientID != requesterID {
		return ErrForbidden
	}
	return s.messages.MarkRead(ctx, messageID)
}

// Delete is sender-only.
func (s *Service) Delete(ctx context.Context, messageID, requesterID int64) error {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if m.SenderID != requesterID {
		return ErrForbidden
	}
	return s.messages.Delete(ctx, messageID)
}
