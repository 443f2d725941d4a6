package unsplash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/unsplash-go/pkg/decode"
	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
	"github.com/yanqian/unsplash-go/pkg/metrics"
)

// Route describes one call: where it goes, whether it needs a user token,
// its parameters and how to decode a successful body.
type Route[T any] struct {
	Method string
	Path   string
	Auth   bool
	Params Params
	Decode decode.Func[T]
}

// Execute performs r and blocks until its single outcome is known.
func Execute[T any](ctx context.Context, c *Client, r Route[T]) (T, error) {
	var zero T
	if err := c.acquire(); err != nil {
		return zero, err
	}
	defer c.release()
	return execute(ctx, c, r)
}

// Dispatch performs r in the background and hands the outcome to done
// exactly once, on a goroutine of its own.
func Dispatch[T any](ctx context.Context, c *Client, r Route[T], done func(T, error)) {
	if err := c.acquire(); err != nil {
		var zero T
		go done(zero, err)
		return
	}
	go func() {
		defer c.release()
		done(execute(ctx, c, r))
	}()
}

func execute[T any](ctx context.Context, c *Client, r Route[T]) (T, error) {
	var zero T
	if r.Decode == nil {
		return zero, fmt.Errorf("route %s %s has no decoder", r.Method, r.Path)
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := c.newRequest(ctx, method, r.Path, r.Auth, r.Params)
	if err != nil {
		return zero, err
	}

	callID := uuid.NewString()
	logger := c.logger.With("call_id", callID, "method", method, "path", r.Path)
	start := time.Now()

	resp, err := c.transport.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		logger.Error("unsplash call failed", "latency_ms", time.Since(start).Milliseconds(), "error", err)
		return zero, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("read unsplash response", "status", resp.StatusCode, "error", err)
		return zero, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	requestID := resp.Header.Get(requestIDKey)
	logger = logger.With(
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency_ms", time.Since(start).Milliseconds(),
		"quota", metrics.ParseRateLimit(resp.Header),
	)

	if err := classify(resp.StatusCode, body, requestID); err != nil {
		var serverErr *ServerError
		if errors.As(err, &serverErr) {
			logger.Error("unsplash call failed", "error", err)
		} else {
			logger.Warn("unsplash call failed", "error", err)
		}
		return zero, err
	}
	logger.Debug("unsplash call")

	v, err := parseBody(body)
	if err != nil {
		logger.Warn("unsplash response is not json", "error", err)
		return zero, &HTTPError{Status: resp.StatusCode, Message: string(body), RequestID: requestID, Err: err}
	}
	out, err := r.Decode(v)
	if err != nil {
		logger.Warn("decode unsplash response", "error", err)
		return zero, err
	}
	return out, nil
}

// parseBody treats an empty body, as sent with 204, as JSON null.
func parseBody(body []byte) (jsonvalue.Value, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return jsonvalue.Null(), nil
	}
	return jsonvalue.Parse(body)
}

// classify maps a non-2xx status to its error. It returns nil for 2xx.
func classify(status int, body []byte, requestID string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 500 && status <= 599:
		return &ServerError{Status: status, Message: string(body), RequestID: requestID}
	case status == http.StatusBadRequest:
		return &BadInputError{Message: string(body), RequestID: requestID}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{}
	case status == http.StatusForbidden, status == http.StatusNotFound, status == http.StatusConflict:
		return routeError(status, body, requestID)
	default:
		return &HTTPError{Status: status, Message: string(body), RequestID: requestID}
	}
}

// routeError expects {"errors": ["..."]}. A body of any other shape falls
// back to HTTPError with the decode failure attached.
func routeError(status int, body []byte, requestID string) error {
	v, err := jsonvalue.Parse(body)
	if err != nil {
		return &HTTPError{Status: status, Message: string(body), RequestID: requestID, Err: err}
	}
	o := decode.ObjectOf(v)
	messages := decode.Required(o, "errors", decode.Array(decode.String))
	if err := o.Err(); err != nil {
		return &HTTPError{Status: status, Message: string(body), RequestID: requestID, Err: err}
	}
	return &RouteError{Status: status, Messages: messages, RequestID: requestID}
}
