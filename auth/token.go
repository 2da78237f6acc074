package auth

import (
	"fmt"
	"notify-lab/domain"
	"notify-lab/errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the data stored inside the JWT.
// The subject carries the numeric user id, matching what the identity
// service issues for every other service of the platform.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens issued by the identity service.
// The secret is shared platform-wide and injected at startup; this core
// never signs tokens outside of tests.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses and validates the signature and expiration of a JWT string
// and resolves the subject claim to a user id.
func (v *Verifier) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, errors.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a user id", errors.ErrInvalidToken)
	}
	return domain.UserID(userID), nil
}

// Generate creates a signed JWT for a specific user. Only the identity
// service issues tokens in production; this exists for tests and local
// tooling that need a valid credential against the shared secret.
func (v *Verifier) Generate(userID domain.UserID, duration time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "notify-lab",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
