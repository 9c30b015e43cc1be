package moviedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned before any network call when an authenticated
// endpoint is hit without a session token, and by any call the API rejects
// with a 401.
var ErrUnauthorized = errors.New("moviedb: unauthorized")

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("moviedb: status %d body=%q", e.Status, truncate(e.Body, 200))
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ParseError is a response body that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "moviedb: decode error: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// NetworkError is a transport failure: no HTTP response at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "moviedb: network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage derives a message fit for display from an API error. The API
// wraps errors in a few shapes; fall back to a generic message rather than
// leaking transport details to the user.
func UserMessage(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) {
		var env struct {
			Message string `json:"message"`
			Error   json.RawMessage `json:"error"`
		}
		if json.Unmarshal([]byte(he.Body), &env) == nil {
			if env.Message != "" {
				return env.Message
			}
			var s string
			if json.Unmarshal(env.Error, &s) == nil && s != "" {
				return s
			}
			var inner struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(env.Error, &inner) == nil && inner.Message != "" {
				return inner.Message
			}
		}
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
