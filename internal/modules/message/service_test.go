package message

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"plushhub/internal/domain"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) ForUser(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserResolver struct {
	mock.Mock
}

func (m *mockUserResolver) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserResolver) RefsByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.UserRef), args.Error(1)
}

type mockEventPusher struct {
	mock.Mock
}

func (m *mockEventPusher) Push(userID int64, event *Event) {
	m.Called(userID, event)
}

func TestService_Send_Success(t *testing.T) {
	messages := new(mockMessageRepo)
	users := new(mockUserResolver)
	events := new(mockEventPusher)

	users.On("Exists", mock.Anything, int64(9)).Return(true, nil)
	messages.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.SenderID == 7 && m.RecipientID == 9 && m.Content == "Trade?"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Message).ID = 1
	}).Return(nil)
	users.On("RefsByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.UserRef{
		7: {ID: 7, Name: "Mia"},
		9: {ID: 9, Name: "Theo"},
	}, nil)
	events.On("Push", int64(9), mock.MatchedBy(func(e *Event) bool {
		return e.Type == EventNewMessage
	})).Return()

	service := NewService(messages, users, events)

	m, err := service.Send(context.Background(), 7, SendRequest{RecipientID: 9, Content: "  Trade?  "})

	assert.NoError(t, err)
	assert.Equal(t, "Mia", m.Sender.Name)
	assert.Equal(t, "Theo", m.Recipient.Name)
	events.AssertExpectations(t)
}

func TestService_Send_ToSelf(t *testing.T) {
	service := NewService(new(mockMessageRepo), new(mockUserResolver), new(mockEventPusher))

	_, err := service.Send(context.Background(), 7, SendRequest{RecipientID: 7, Content: "hi"})

	assert.ErrorIs(t, err, ErrSelfMessage)
}

func TestService_Send_UnknownRecipient(t *testing.T) {
	users := new(mockUserResolver)
	users.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	service := NewService(new(mockMessageRepo), users, new(mockEventPusher))

	_, err := service.Send(context.Background(), 7, SendRequest{RecipientID: 404, Content: "hi"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Send_ContentTooLong(t *testing.T) {
	service := NewService(new(mockMessageRepo), new(mockUserResolver), new(mockEventPusher))

	_, err := service.Send(context.Background(), 7, SendRequest{
		RecipientID: 9,
		Content:     strings.Repeat("a", 1001),
	})

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Send_LimitCountsRunesNotBytes(t *testing.T) {
	messages := new(mockMessageRepo)
	users := new(mockUserResolver)
	events := new(mockEventPusher)
	service := NewService(messages, users, events)

	users.On("Exists", mock.Anything, int64(9)).Return(true, nil)
	messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("RefsByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.UserRef{}, nil)
	events.On("Push", mock.Anything, mock.Anything).Return()

	// 1000 two-byte runes would fail a byte-length check.
	_, err := service.Send(context.Background(), 7, SendRequest{
		RecipientID: 9,
		Content:     strings.Repeat("ы", 1000),
	})
	assert.NoError(t, err)

	_, err = service.Send(context.Background(), 7, SendRequest{
		RecipientID: 9,
		Content:     strings.Repeat("ы", 1001),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Get_ThirdPartyForbidden(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Message{ID: 1, SenderID: 7, RecipientID: 9}, nil)

	service := NewService(messages, new(mockUserResolver), new(mockEventPusher))

	_, err := service.Get(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_MarkRead_RecipientOnly(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Message{ID: 1, SenderID: 7, RecipientID: 9}, nil)
	messages.On("MarkRead", mock.Anything, int64(1)).Return(nil)

	service := NewService(messages, new(mockUserResolver), new(mockEventPusher))

	assert.ErrorIs(t, service.MarkRead(context.Background(), 1, 7), ErrForbidden)
	assert.NoError(t, service.MarkRead(context.Background(), 1, 9))
}

func TestService_Delete_SenderOnly(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Message{ID: 1, SenderID: 7, RecipientID: 9}, nil)
	messages.On("Delete", mock.Anything, int64(1)).Return(nil)

	service := NewService(messages, new(mockUserResolver), new(mockEventPusher))

	assert.ErrorIs(t, service.Delete(context.Background(), 1, 9), ErrForbidden)
	assert.NoError(t, service.Delete(context.Background(), 1, 7))
}

func TestService_Delete_Unknown(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(messages, new(mockUserResolver), new(mockEventPusher))

	assert.ErrorIs(t, service.Delete(context.Background(), 404, 7), ErrNotFound)
}
