package unsplash

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthorized is returned before dispatch when a route needs a user
	// token and the client has none.
	ErrNotAuthorized = errors.New("unsplash: client is not authorized for this route")
	// ErrClientClosed is returned for calls issued after Close.
	ErrClientClosed = errors.New("unsplash: client closed")
)

// TransportError means no HTTP response was obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "unsplash: transport failure"
	}
	return "unsplash: transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is any 5xx response.
type ServerError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *ServerError) Error() string {
	return withRequestID(e.RequestID, withMessage(fmt.Sprintf("internal server error %d", e.Status), e.Message))
}

// BadInputError is a 400 response.
type BadInputError struct {
	Message   string
	RequestID string
}

func (e *BadInputError) Error() string {
	return withRequestID(e.RequestID, withMessage("bad input", e.Message))
}

// RateLimitError is a 429 response. The body is not kept.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limited"
}

// RouteError is a 403, 404 or 409 carrying the API's error list.
type RouteError struct {
	Status    int
	Messages  []string
	RequestID string
}

func (e *RouteError) Error() string {
	return withRequestID(e.RequestID, "api route error: "+strings.Join(e.Messages, "; "))
}

// HTTPError covers every other unsuccessful outcome: unexpected statuses,
// error bodies without the expected shape, and 2xx bodies that are not JSON.
type HTTPError struct {
	Status    int
	Message   string
	RequestID string
	Err       error
}

func (e *HTTPError) Error() string {
	head := "http error"
	if e.Status != 0 {
		head = fmt.Sprintf("http error %d", e.Status)
	}
	msg := withMessage(head, e.Message)
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return withRequestID(e.RequestID, msg)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func withMessage(head, message string) string {
	if message == "" {
		return head
	}
	return head + ": " + message
}

func withRequestID(id, msg string) string {
	if id == "" {
		return msg
	}
	return "[request-id " + id + "] " + msg
}
