package server

import (
	"log/slog"
	"net/http"
	"notify-lab/auth"
	"notify-lab/errors"
	"notify-lab/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

// NotificationServer serves the synchronous query API, used by clients
// that do not hold an open connection. Every handler runs behind the auth
// middleware, so the user id is always resolved before any store access.
type NotificationServer struct {
	log     *slog.Logger
	service services.INotificationService
}

func NewNotificationServer(log *slog.Logger, service services.INotificationService) *NotificationServer {
	return &NotificationServer{log: log, service: service}
}

func (s *NotificationServer) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Notification Service",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *NotificationServer) List(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrMissingToken.Error()})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultListLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	notifications, err := s.service.List(userID, limit)
	if err != nil {
		s.log.Error("Listing notifications failed", "user_id", userID, "error", err)
		c.JSON(errors.MapToHTTPStatus(err), gin.H{"error": "listing notifications failed"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *NotificationServer) MarkRead(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrMissingToken.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification id must be an integer"})
		return
	}

	// Success regardless of match: re-acknowledging an already-read or
	// foreign notification is a no-op, not an error.
	if err := s.service.MarkAsRead(id, userID); err != nil {
		s.log.Error("Mark as read failed", "notification_id", id, "user_id", userID, "error", err)
		c.JSON(errors.MapToHTTPStatus(err), gin.H{"error": "mark as read failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *NotificationServer) UnreadCount(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrMissingToken.Error()})
		return
	}

	count, err := s.service.UnreadCount(userID)
	if err != nil {
		s.log.Error("Unread count failed", "user_id", userID, "error", err)
		c.JSON(errors.MapToHTTPStatus(err), gin.H{"error": "unread count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
