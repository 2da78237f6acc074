package auth

import (
	"net/http"
	"net/http/httptest"
	"notify-lab/domain"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(verifier *Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", Middleware(verifier), func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "identity missing")
			return
		}
		c.String(http.StatusOK, strconv.FormatInt(int64(userID), 10))
	})
	return router
}

func TestMiddleware_Accepts_Bearer_Header(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier(testSecret)
	router := newProtectedRouter(verifier)

	token, err := verifier.Generate(domain.UserID(7), time.Hour)
	req.NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	req.Equal(http.StatusOK, recorder.Code)
	req.Equal("7", recorder.Body.String())
}

func TestMiddleware_Accepts_Token_Query_Parameter(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier(testSecret)
	router := newProtectedRouter(verifier)

	token, err := verifier.Generate(domain.UserID(7), time.Hour)
	req.NoError(err)

	request := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	req.Equal(http.StatusOK, recorder.Code)
	req.Equal("7", recorder.Body.String())
}

func TestMiddleware_Rejects_Missing_Credential(t *testing.T) {
	req := require.New(t)
	router := newProtectedRouter(NewVerifier(testSecret))

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	req.Equal(http.StatusUnauthorized, recorder.Code)
	req.JSONEq(`{"error":"token required"}`, recorder.Body.String())
}

func TestMiddleware_Rejects_Invalid_Credential(t *testing.T) {
	req := require.New(t)
	router := newProtectedRouter(NewVerifier(testSecret))

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer forged")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	req.Equal(http.StatusUnauthorized, recorder.Code)
	req.JSONEq(`{"error":"invalid or expired token"}`, recorder.Body.String())
}
