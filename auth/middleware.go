package auth

import (
	"notify-lab/contract"
	"notify-lab/domain"
	"notify-lab/errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// Middleware handles JWT validation for incoming HTTP calls.
// The credential is taken from the standard Authorization header or,
// like the websocket handshake, from a token query parameter.
// Rejection happens before any store access, distinguishing an absent
// credential from an invalid one.
func Middleware(verifier contract.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(errors.MapToHTTPStatus(errors.ErrMissingToken),
				gin.H{"error": errors.ErrMissingToken.Error()})
			return
		}

		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(errors.MapToHTTPStatus(err),
				gin.H{"error": errors.ErrInvalidToken.Error()})
			return
		}

		// Inject the resolved identity for downstream handlers
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID retrieves the identity resolved by Middleware.
func UserID(c *gin.Context) (domain.UserID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(domain.UserID)
	return userID, ok
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
