package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"notify-lab/auth"
	"notify-lab/domain"
	"notify-lab/mocks"
	"notify-lab/services"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockINotificationService, *auth.Verifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockINotificationService(ctrl)
	verifier := auth.NewVerifier(testSecret)
	log := slog.Default()
	wsServer := NewWsServer(log, verifier, service, 16, time.Second)
	notificationServer := NewNotificationServer(log, service)
	return NewRouter(verifier, notificationServer, wsServer), service, verifier
}

func bearerRequest(t *testing.T, verifier *auth.Verifier,
	method, target string, userID domain.UserID) *http.Request {
	t.Helper()
	token, err := verifier.Generate(userID, time.Hour)
	require.NoError(t, err)
	request := httptest.NewRequest(method, target, nil)
	request.Header.Set("Authorization", "Bearer "+token)
	return request
}

func TestNotificationServer_Root_Reports_Identity(t *testing.T) {
	req := require.New(t)
	router, _, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"service":"Notification Service","version":"1.0.0","status":"running"}`,
		recorder.Body.String())
}

func TestNotificationServer_List_Returns_Notifications(t *testing.T) {
	req := require.New(t)
	router, service, verifier := newTestRouter(t)
	userID := domain.UserID(7)

	service.EXPECT().
		List(userID, services.DefaultListLimit).
		Return([]domain.Notification{
			{ID: 2, UserID: userID, Type: "task_assigned", Title: "b", Message: "m"},
			{ID: 1, UserID: userID, Type: "task_assigned", Title: "a", Message: "m"},
		}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodGet, "/api/notifications", userID))

	req.Equal(http.StatusOK, recorder.Code)
	// The owner is implicit in the credential and never serialized
	req.NotContains(recorder.Body.String(), "user_id")
	req.Contains(recorder.Body.String(), `"id":2`)
	req.Contains(recorder.Body.String(), `"id":1`)
}

func TestNotificationServer_List_Forwards_Custom_Limit(t *testing.T) {
	req := require.New(t)
	router, service, verifier := newTestRouter(t)
	userID := domain.UserID(7)

	service.EXPECT().List(userID, 5).Return([]domain.Notification{}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodGet, "/api/notifications?limit=5", userID))

	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`[]`, recorder.Body.String())
}

func TestNotificationServer_List_Rejects_Bad_Limit(t *testing.T) {
	req := require.New(t)
	router, _, verifier := newTestRouter(t)

	for _, limit := range []string{"abc", "-1", "0"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder,
			bearerRequest(t, verifier, http.MethodGet, "/api/notifications?limit="+limit, 7))
		req.Equal(http.StatusBadRequest, recorder.Code)
	}
}

func TestNotificationServer_List_Requires_Credential(t *testing.T) {
	req := require.New(t)
	router, _, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	req.Equal(http.StatusUnauthorized, recorder.Code)
}

func TestNotificationServer_List_Store_Failure_Is_500(t *testing.T) {
	req := require.New(t)
	router, service, verifier := newTestRouter(t)
	userID := domain.UserID(7)

	service.EXPECT().
		List(userID, services.DefaultListLimit).
		Return(nil, badger.ErrDBClosed)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodGet, "/api/notifications", userID))

	req.Equal(http.StatusInternalServerError, recorder.Code)
}

func TestNotificationServer_MarkRead_Reports_Success(t *testing.T) {
	req := require.New(t)
	router, service, verifier := newTestRouter(t)
	userID := domain.UserID(7)

	service.EXPECT().MarkAsRead(uint64(12), userID).Return(nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodPost, "/api/notifications/12/read", userID))

	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"success":true}`, recorder.Body.String())
}

func TestNotificationServer_MarkRead_Rejects_Non_Numeric_Id(t *testing.T) {
	req := require.New(t)
	router, _, verifier := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodPost, "/api/notifications/abc/read", 7))

	req.Equal(http.StatusBadRequest, recorder.Code)
}

func TestNotificationServer_UnreadCount(t *testing.T) {
	req := require.New(t)
	router, service, verifier := newTestRouter(t)
	userID := domain.UserID(7)

	service.EXPECT().UnreadCount(userID).Return(3, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder,
		bearerRequest(t, verifier, http.MethodGet, "/api/notifications/unread-count", userID))

	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"count":3}`, recorder.Body.String())
}
