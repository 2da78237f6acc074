package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"notify-lab/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testNotificationSuite struct {
	BaseSuite
}

func TestNotificationSuite(t *testing.T) {
	suite.Run(t, &testNotificationSuite{})
}

func (s *testNotificationSuite) TestFullNotificationFlow() {
	// A fresh user id per run keeps reruns independent on a shared instance
	userID := domain.UserID(time.Now().UnixNano() % 1_000_000)
	token := s.Token(userID)

	var pushed domain.Notification

	// --- STEP 1: LIVE PUSH ---
	s.Run("Step 1: Connected client receives the push", func() {
		s.Step("Connect, publish, receive")
		conn := s.DialWs(token)
		defer conn.Close()

		payload, err := json.Marshal(map[string]any{
			"user_id": int64(userID),
			"type":    "task_assigned",
			"title":   "E2E task",
			"message": "You have been assigned a task",
			"task_id": 12,
		})
		s.Require().NoError(err)
		s.PublishEvent(payload)

		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(10 * time.Second)))
		s.Require().NoError(conn.ReadJSON(&pushed))
		s.Require().NotZero(pushed.ID)
		s.Require().Equal("E2E task", pushed.Title)
	})

	// --- STEP 2: QUERY API SEES THE SAME RECORD ---
	s.Run("Step 2: History and unread count reflect the event", func() {
		s.Step("Query the pull API")
		status, body := s.DoJSON(http.MethodGet, "/api/notifications", token)
		s.Require().Equal(http.StatusOK, status)

		var notifications []domain.Notification
		s.Require().NoError(json.Unmarshal(body, &notifications))
		s.Require().Len(notifications, 1)
		s.Require().Equal(pushed.ID, notifications[0].ID)
		s.Require().False(notifications[0].Read)

		status, body = s.DoJSON(http.MethodGet, "/api/notifications/unread-count", token)
		s.Require().Equal(http.StatusOK, status)
		s.Require().JSONEq(`{"count":1}`, string(body))
	})

	// --- STEP 3: ACKNOWLEDGE OVER HTTP ---
	s.Run("Step 3: Mark as read clears the unread count", func() {
		s.Step("Acknowledge")
		path := fmt.Sprintf("/api/notifications/%d/read", pushed.ID)
		status, body := s.DoJSON(http.MethodPost, path, token)
		s.Require().Equal(http.StatusOK, status)
		s.Require().JSONEq(`{"success":true}`, string(body))

		s.Eventually(func() bool {
			status, body := s.DoJSON(http.MethodGet, "/api/notifications/unread-count", token)
			return status == http.StatusOK && string(body) == `{"count":0}`
		}, 5*time.Second, 500*time.Millisecond, "Unread count should drop to zero")
	})

	// --- STEP 4: NO REPLAY ONCE EVERYTHING IS READ ---
	s.Run("Step 4: Reconnecting replays nothing", func() {
		s.Step("Reconnect")
		conn := s.DialWs(token)
		defer conn.Close()

		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
		var replayed domain.Notification
		err := conn.ReadJSON(&replayed)
		s.Require().Error(err, "No unread backlog should be replayed")
	})
}

func (s *testNotificationSuite) TestRejectsForeignAcknowledgement() {
	owner := domain.UserID(time.Now().UnixNano() % 1_000_000)
	intruder := owner + 1

	s.Step("Publish for the owner")
	payload, err := json.Marshal(map[string]any{
		"user_id": int64(owner),
		"type":    "task_assigned",
		"title":   "Private",
		"message": "m",
	})
	s.Require().NoError(err)
	s.PublishEvent(payload)

	ownerToken := s.Token(owner)
	s.Eventually(func() bool {
		status, body := s.DoJSON(http.MethodGet, "/api/notifications/unread-count", ownerToken)
		return status == http.StatusOK && string(body) == `{"count":1}`
	}, 10*time.Second, 500*time.Millisecond, "Event should be persisted")

	var notifications []domain.Notification
	_, body := s.DoJSON(http.MethodGet, "/api/notifications", ownerToken)
	s.Require().NoError(json.Unmarshal(body, &notifications))
	s.Require().Len(notifications, 1)

	s.Step("Intruder acknowledges the owner's notification")
	path := fmt.Sprintf("/api/notifications/%d/read", notifications[0].ID)
	status, _ := s.DoJSON(http.MethodPost, path, s.Token(intruder))
	s.Require().Equal(http.StatusOK, status)

	// The owner's record is untouched
	status, body = s.DoJSON(http.MethodGet, "/api/notifications/unread-count", ownerToken)
	s.Require().Equal(http.StatusOK, status)
	s.Require().JSONEq(`{"count":1}`, string(body))
}
