package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// ErrSinkClosed is the expected push failure: the session owning the
	// sink already shut it down. Cleanup still runs but it is not worth an
	// error-level log.
	ErrSinkClosed = fmt.Errorf("sink closed")

	// ErrSinkBackpressure means the sink buffer is full. The connection is
	// treated as dead and pruned so one slow client never stalls fan-out.
	ErrSinkBackpressure = fmt.Errorf("sink buffer full")

	ErrMissingToken = fmt.Errorf("token required")
	ErrInvalidToken = fmt.Errorf("invalid or expired token")
)

// MapToHTTPStatus translates domain errors to HTTP status codes at the
// transport boundary. Anything unrecognized is a store/internal failure.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
