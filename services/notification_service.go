//go:generate go run go.uber.org/mock/mockgen -source=notification_service.go -destination=../mocks/mock_notification_service.go -package=mocks
package services

import (
	"log/slog"
	"notify-lab/contract"
	"notify-lab/domain"
	"notify-lab/repositories"
)

const (
	// DefaultListLimit bounds history queries that pass no explicit limit.
	DefaultListLimit = 50
	// ReplayLimit caps the unread backlog replayed when a client connects.
	// Older unread records stay reachable through the history query.
	ReplayLimit = 20
)

type INotificationService interface {
	List(userID domain.UserID, limit int) ([]domain.Notification, error)
	UnreadCount(userID domain.UserID) (int, error)
	MarkAsRead(id uint64, userID domain.UserID) error
	ReplayUnread(userID domain.UserID) ([]domain.Notification, error)
	Connect(userID domain.UserID, sink contract.PushSink)
	Disconnect(userID domain.UserID, sink contract.PushSink)
}

// NotificationService sits between the transports (HTTP query API,
// websocket sessions) and the store plus registry. Both transports share
// the same acknowledgement path.
type NotificationService struct {
	log        *slog.Logger
	repository repositories.INotificationRepository
	registry   contract.IRegistry
}

func NewNotificationService(log *slog.Logger,
	repository repositories.INotificationRepository,
	registry contract.IRegistry) *NotificationService {
	return &NotificationService{log: log, repository: repository, registry: registry}
}

// List returns the user's notifications newest first. A non-positive
// limit falls back to the default.
func (s *NotificationService) List(userID domain.UserID, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	notifications, err := s.repository.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(userID domain.UserID) (int, error) {
	return s.repository.UnreadCount(userID)
}

// MarkAsRead acknowledges a notification. The write is scoped to
// (notification id, user id): a foreign or unknown id matches zero rows,
// which is a silent success.
func (s *NotificationService) MarkAsRead(id uint64, userID domain.UserID) error {
	_, err := s.repository.MarkAsRead(id, userID)
	return err
}

// ReplayUnread returns the unread backlog pushed to a freshly connected
// client, newest first, capped.
func (s *NotificationService) ReplayUnread(userID domain.UserID) ([]domain.Notification, error) {
	return s.repository.ListUnread(userID, ReplayLimit)
}

func (s *NotificationService) Connect(userID domain.UserID, sink contract.PushSink) {
	s.registry.Register(userID, sink)
}

func (s *NotificationService) Disconnect(userID domain.UserID, sink contract.PushSink) {
	s.registry.Deregister(userID, sink)
}
