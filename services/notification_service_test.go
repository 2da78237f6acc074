package services

import (
	"log/slog"
	"notify-lab/domain"
	"notify-lab/mocks"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*NotificationService,
	*mocks.MockINotificationRepository, *mocks.MockIRegistry) {
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockINotificationRepository(ctrl)
	registry := mocks.NewMockIRegistry(ctrl)
	return NewNotificationService(slog.Default(), repository, registry), repository, registry
}

func TestNotificationService_List_Passes_Explicit_Limit(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)
	userID := domain.UserID(1)

	expected := []domain.Notification{{ID: 2, UserID: userID}, {ID: 1, UserID: userID}}
	repository.EXPECT().ListByUser(userID, 10).Return(expected, nil)

	fetched, err := service.List(userID, 10)
	req.NoError(err)
	req.Equal(expected, fetched)
}

func TestNotificationService_List_Defaults_Non_Positive_Limit(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)
	userID := domain.UserID(1)

	repository.EXPECT().ListByUser(userID, DefaultListLimit).Return(nil, nil).Times(2)

	_, err := service.List(userID, 0)
	req.NoError(err)
	_, err = service.List(userID, -3)
	req.NoError(err)
}

func TestNotificationService_List_Never_Returns_Nil(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)
	userID := domain.UserID(1)

	// Given a user with no history
	repository.EXPECT().ListByUser(userID, DefaultListLimit).Return(nil, nil)

	fetched, err := service.List(userID, 0)
	req.NoError(err)

	// Then the API serializes [] instead of null
	req.NotNil(fetched)
	req.Empty(fetched)
}

func TestNotificationService_List_Propagates_Store_Errors(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)

	repository.EXPECT().
		ListByUser(domain.UserID(1), DefaultListLimit).
		Return(nil, badger.ErrDBClosed)

	_, err := service.List(1, 0)
	req.ErrorIs(err, badger.ErrDBClosed)
}

func TestNotificationService_MarkAsRead_Succeeds_Without_Match(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)

	// Given an acknowledgement that matches no row (foreign or unknown id)
	repository.EXPECT().MarkAsRead(uint64(99), domain.UserID(1)).Return(false, nil)

	// Then the caller still sees success
	req.NoError(service.MarkAsRead(99, 1))
}

func TestNotificationService_ReplayUnread_Is_Capped(t *testing.T) {
	req := require.New(t)
	service, repository, _ := newTestService(t)
	userID := domain.UserID(1)

	backlog := []domain.Notification{{ID: 3, UserID: userID}, {ID: 2, UserID: userID}}
	repository.EXPECT().ListUnread(userID, ReplayLimit).Return(backlog, nil)

	fetched, err := service.ReplayUnread(userID)
	req.NoError(err)
	req.Equal(backlog, fetched)
}

func TestNotificationService_Connect_And_Disconnect_Delegate(t *testing.T) {
	service, _, registry := newTestService(t)
	userID := domain.UserID(1)
	snk := mocks.NewMockPushSink(gomock.NewController(t))

	registry.EXPECT().Register(userID, snk)
	registry.EXPECT().Deregister(userID, snk)

	service.Connect(userID, snk)
	service.Disconnect(userID, snk)
}
