package unsplash

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	defaultTimeout = 10 * time.Second
	apiVersion     = "v1"
	requestIDKey   = "X-Request-Id"
)

// Transport sends one HTTP request. *http.Client satisfies it; connection
// reuse and TLS are its concern.
type Transport interface {
	Do(*http.Request) (*http.Response, error)
}

// Config identifies the application to the API.
type Config struct {
	AppID   string
	BaseURL string
	Timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the default *http.Client.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithTokenSource supplies user tokens for authenticated routes.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a session against the API. It is safe for concurrent use; each
// call owns its request, response and decoded value.
type Client struct {
	appID     string
	baseURL   string
	transport Transport
	tokens    oauth2.TokenSource
	logger    *slog.Logger

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// NewClient builds a client for cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	appID := strings.TrimSpace(cfg.AppID)
	if appID == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, "unsplash app id is required", nil)
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, "unsplash base url must be absolute", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		appID:     appID,
		baseURL:   strings.TrimRight(base, "/"),
		transport: &http.Client{Timeout: timeout},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "unsplash_client")
	return c, nil
}

// Authorized reports whether the token source currently yields a usable
// token. It consults the source, so it may read the credential store.
func (c *Client) Authorized() bool {
	if c.tokens == nil {
		return false
	}
	token, err := c.tokens.Token()
	return err == nil && token.Valid()
}

// Close stops accepting calls and waits for in-flight ones to finish.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.inflight.Wait()
}

func (c *Client) acquire() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	c.inflight.Add(1)
	return nil
}

func (c *Client) release() {
	c.inflight.Done()
}

// Params are route parameters. GET and DELETE send them as the query
// string, POST and PUT as a JSON object body.
type Params map[string]any

func (p Params) query() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := url.Values{}
	for _, k := range keys {
		values.Set(k, fmt.Sprint(p[k]))
	}
	return values.Encode()
}

func (c *Client) newRequest(ctx context.Context, method, path string, auth bool, params Params) (*http.Request, error) {
	endpoint := c.baseURL + path
	var body io.Reader
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if params == nil {
			params = Params{}
		}
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	default:
		if q := params.query(); q != "" {
			endpoint += "?" + q
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	if !auth {
		req.Header.Set("Authorization", "Client-ID "+c.appID)
		return req, nil
	}
	if c.tokens == nil {
		return nil, ErrNotAuthorized
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAuthorized, err)
	}
	if !token.Valid() {
		return nil, ErrNotAuthorized
	}
	token.SetAuthHeader(req)
	return req, nil
}
