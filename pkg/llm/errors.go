package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Typed completion failures. Callers treat all of them as recoverable and
// move on to their fallback stage.
var (
	ErrTimeout      = errors.New("llm: request timed out")
	ErrUnauthorized = errors.New("llm: unauthorized")
	ErrRateLimited  = errors.New("llm: rate limited")
)

// MapStatusError translates an HTTP status code into the provider error
// taxonomy. A nil return means the status is not an error.
func MapStatusError(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

// MapTransportError normalizes context and net timeouts to ErrTimeout.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return err
}
