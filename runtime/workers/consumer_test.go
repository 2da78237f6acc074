package workers

import (
	"encoding/json"
	"log/slog"
	"notify-lab/domain"
	"notify-lab/domain/event"
	"notify-lab/mocks"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestConsumer(t *testing.T) (*Consumer, *mocks.MockINotificationRepository, *mocks.MockIBroadcaster) {
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockINotificationRepository(ctrl)
	broadcaster := mocks.NewMockIBroadcaster(ctrl)
	consumer := NewConsumer(slog.Default(), nil, repository, broadcaster,
		"task-notifications", "notification-service", time.Second)
	return consumer, repository, broadcaster
}

func taskEventJSON(t *testing.T, userID int64) []byte {
	t.Helper()
	taskID := int64(12)
	data, err := json.Marshal(event.TaskEvent{
		UserID:  &userID,
		Type:    "task_assigned",
		Title:   "New task",
		Message: "You have been assigned a task",
		TaskID:  &taskID,
	})
	require.NoError(t, err)
	return data
}

func TestConsumer_Handle_Valid_Event_Persists_Then_Broadcasts(t *testing.T) {
	req := require.New(t)
	consumer, repository, broadcaster := newTestConsumer(t)

	stored := domain.Notification{ID: 1, UserID: 5, Type: "task_assigned"}

	// Then the persisted record, not the raw event, is what gets pushed
	gomock.InOrder(
		repository.EXPECT().
			Insert(gomock.Any()).
			Return(stored, nil),
		broadcaster.EXPECT().
			Broadcast(stored),
	)

	// When a well-formed event arrives
	req.Equal(ackEvent, consumer.handle(taskEventJSON(t, 5)))
}

func TestConsumer_Handle_Malformed_JSON_Is_Skipped(t *testing.T) {
	req := require.New(t)
	consumer, _, _ := newTestConsumer(t)

	// When the payload is not JSON at all
	// Then it is dropped without touching the store (no mock expectations)
	req.Equal(skipEvent, consumer.handle([]byte("not json {")))
}

func TestConsumer_Handle_Missing_Fields_Is_Skipped(t *testing.T) {
	req := require.New(t)
	consumer, _, _ := newTestConsumer(t)

	// When the event parses but lacks mandatory fields
	data, err := json.Marshal(map[string]any{"type": "task_assigned"})
	req.NoError(err)

	// Then it is dropped: retrying a malformed event can never succeed
	req.Equal(skipEvent, consumer.handle(data))
}

func TestConsumer_Handle_Store_Failure_Requests_Redelivery(t *testing.T) {
	req := require.New(t)
	consumer, repository, _ := newTestConsumer(t)

	// Given a store that cannot accept writes right now
	repository.EXPECT().
		Insert(gomock.Any()).
		Return(domain.Notification{}, badger.ErrBlockedWrites)

	// When a valid event arrives
	// Then the position must not advance and nothing is broadcast
	req.Equal(retryEvent, consumer.handle(taskEventJSON(t, 5)))
}

func TestConsumer_Handle_Maps_Event_To_Notification(t *testing.T) {
	req := require.New(t)
	consumer, repository, broadcaster := newTestConsumer(t)

	var inserted domain.Notification
	repository.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(n domain.Notification) (domain.Notification, error) {
			inserted = n
			n.ID = 42
			return n, nil
		})
	broadcaster.EXPECT().Broadcast(gomock.Any())

	req.Equal(ackEvent, consumer.handle(taskEventJSON(t, 5)))

	// Then the upstream fields survived the mapping
	req.Equal(domain.UserID(5), inserted.UserID)
	req.Equal("task_assigned", inserted.Type)
	req.Equal("New task", inserted.Title)
	req.Equal("You have been assigned a task", inserted.Message)
	req.NotNil(inserted.TaskID)
	req.Equal(int64(12), *inserted.TaskID)
}
