package server

import (
	"log/slog"
	"net/http"
	"notify-lab/contract"
	"notify-lab/domain"
	"notify-lab/errors"
	"notify-lab/services"
	"notify-lab/sink"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WsServer handles the per-connection session protocol:
// verify the credential, register the connection, replay the unread
// backlog, then loop on inbound acknowledgements until disconnect.
type WsServer struct {
	log          *slog.Logger
	verifier     contract.TokenVerifier
	service      services.INotificationService
	upgrader     websocket.Upgrader
	bufferSize   int
	writeTimeout time.Duration
}

func NewWsServer(log *slog.Logger, verifier contract.TokenVerifier,
	service services.INotificationService, bufferSize int,
	writeTimeout time.Duration) *WsServer {
	return &WsServer{
		log:      log,
		verifier: verifier,
		service:  service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin; access control is the
			// token, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		bufferSize:   bufferSize,
		writeTimeout: writeTimeout,
	}
}

// Handle upgrades the connection, then resolves the credential from the
// token query parameter. A missing and an invalid credential get distinct
// close reasons, and neither reaches the open state.
func (s *WsServer) Handle(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("Websocket handshake failed", "error", err)
		return
	}

	token := c.Query("token")
	if token == "" {
		s.closeWith(conn, websocket.ClosePolicyViolation, errors.ErrMissingToken.Error())
		return
	}
	userID, err := s.verifier.Verify(token)
	if err != nil {
		s.closeWith(conn, websocket.ClosePolicyViolation, errors.ErrInvalidToken.Error())
		return
	}

	s.serve(conn, userID)
}

// serve owns the session. Every exit path funnels through the deferred
// deregister, which is idempotent with the broadcaster's failure pruning.
func (s *WsServer) serve(conn *websocket.Conn, userID domain.UserID) {
	defer conn.Close()

	snk := sink.NewWsSink(s.bufferSize)
	defer snk.Close()

	// Register before querying the backlog: an event landing between the
	// two queues on the sink and is delivered after the replay, instead of
	// falling between the query and the registration.
	s.service.Connect(userID, snk)
	defer s.service.Disconnect(userID, snk)

	unread, err := s.service.ReplayUnread(userID)
	if err != nil {
		s.log.Error("Unread replay failed", "user_id", userID, "error", err)
		s.closeWith(conn, websocket.CloseInternalServerErr, "replay failed")
		return
	}
	for _, n := range unread {
		if err := conn.WriteJSON(n); err != nil {
			s.log.Debug("Replay interrupted", "user_id", userID, "sink_id", snk.ID(), "error", err)
			return
		}
	}

	// The writer pump starts only after the replay so the connection never
	// has two concurrent writers.
	go s.writeLoop(conn, snk, userID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("Client disconnected",
				"user_id", userID, "sink_id", snk.ID(), "reason", err)
			return
		}
		s.handleCommand(string(data), userID)
	}
}

// writeLoop drains the sink onto the socket. A write failure closes the
// connection, which also unblocks the read loop promptly.
func (s *WsServer) writeLoop(conn *websocket.Conn, snk *sink.WsSink, userID domain.UserID) {
	for {
		select {
		case n := <-snk.Events():
			if err := conn.WriteJSON(n); err != nil {
				s.log.Debug("Push write failed",
					"user_id", userID, "sink_id", snk.ID(), "error", err)
				_ = conn.Close()
				return
			}
		case <-snk.Closed():
			return
		}
	}
}

// handleCommand processes one inbound client message. The only recognized
// form is "read:<notification_id>"; anything else is ignored so unknown
// future commands never terminate the connection.
func (s *WsServer) handleCommand(text string, userID domain.UserID) {
	rest, ok := strings.CutPrefix(text, "read:")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return
	}
	if err := s.service.MarkAsRead(id, userID); err != nil {
		s.log.Error("Acknowledgement failed",
			"notification_id", id, "user_id", userID, "error", err)
	}
}

func (s *WsServer) closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(s.writeTimeout)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), deadline)
	_ = conn.Close()
}
