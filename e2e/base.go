package e2e

import (
	"fmt"
	"io"
	"net/http"
	"notify-lab/auth"
	"notify-lab/domain"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"
)

// BaseSuite runs against a live notifier instance plus its NATS server.
// It stays inert unless BASE_URL points somewhere, so `go test ./...`
// never depends on running infrastructure.
type BaseSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BaseURL == "" {
		s.T().Skip("BASE_URL not set, skipping end-to-end suite")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Step prints a colorized header so scenario phases stand out in logs
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Token issues a credential against the shared secret the instance runs with
func (s *BaseSuite) Token(userID domain.UserID) string {
	token, err := auth.NewVerifier([]byte(s.Config.JWTSecret)).Generate(userID, time.Hour)
	s.Require().NoError(err)
	return token
}

// DoJSON performs an authenticated call and returns status plus raw body
func (s *BaseSuite) DoJSON(method, path, token string) (int, []byte) {
	request, err := http.NewRequest(method, s.Config.BaseURL+path, nil)
	s.Require().NoError(err)
	request.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	response, err := s.client.Do(request)
	s.Require().NoError(err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, response.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(body))
	}
	s.T().Log(logBuilder.String())

	return response.StatusCode, body
}

// DialWs opens a client session the way a browser would
func (s *BaseSuite) DialWs(token string) *websocket.Conn {
	url := strings.Replace(s.Config.BaseURL, "http", "ws", 1) + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

// PublishEvent injects an upstream event on the notification subject
func (s *BaseSuite) PublishEvent(payload []byte) {
	nc, err := nats.Connect(s.Config.NatsURL)
	s.Require().NoError(err)
	defer nc.Close()

	s.Require().NoError(nc.Publish(s.Config.Subject, payload))
	s.Require().NoError(nc.Flush())
}
