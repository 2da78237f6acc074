package server

import (
	"notify-lab/auth"
	"notify-lab/contract"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the public surface: the websocket endpoint does its own
// credential check so it can answer with a close reason instead of an
// HTTP status, everything under /api goes through the auth middleware.
func NewRouter(verifier contract.TokenVerifier,
	notifications *NotificationServer, ws *WsServer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", notifications.Root)
	router.GET("/ws", ws.Handle)

	api := router.Group("/api")
	api.Use(auth.Middleware(verifier))
	api.GET("/notifications", notifications.List)
	api.GET("/notifications/unread-count", notifications.UnreadCount)
	api.POST("/notifications/:id/read", notifications.MarkRead)

	return router
}
