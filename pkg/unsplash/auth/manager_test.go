package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
)

type mapStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]string)}
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *mapStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func newTestManager(t *testing.T, authBase string, store unsplash.CredentialStore) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		AppID:       "app-123",
		Secret:      "shh",
		RedirectURL: "http://127.0.0.1:8765/oauth/callback",
		AuthBaseURL: authBase,
	}, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return m
}

func TestNewManager_RequiresConfig(t *testing.T) {
	_, err := NewManager(Config{AppID: "a"}, newMapStore(), nil)
	require.True(t, apperrors.IsCode(err, "auth_not_configured"))

	_, err = NewManager(Config{AppID: "a", Secret: "s", RedirectURL: "http://localhost/cb"}, nil, nil)
	require.True(t, apperrors.IsCode(err, "auth_not_configured"))
}

func TestAuthURL(t *testing.T) {
	m := newTestManager(t, "https://unsplash.example", newMapStore())

	raw := m.AuthURL("state-1")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "unsplash.example", u.Host)
	require.Equal(t, "/oauth/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "app-123", q.Get("client_id"))
	require.Equal(t, "http://127.0.0.1:8765/oauth/callback", q.Get("redirect_uri"))
	require.Equal(t, "public read_user write_user read_photos write_photos write_likes read_collections write_collections", q.Get("scope"))
	require.Equal(t, "state-1", q.Get("state"))
}

func TestCodeFromRedirect(t *testing.T) {
	m := newTestManager(t, "", newMapStore())

	code, err := m.CodeFromRedirect(mustURL(t, "http://127.0.0.1:8765/oauth/callback?code=abc&state=s"))
	require.NoError(t, err)
	require.Equal(t, "abc", code)

	_, err = m.CodeFromRedirect(mustURL(t, "http://127.0.0.1:8765/oauth/callback?error=access_denied&error_description=The+resource+owner+denied+the+request"))
	var oauthErr *OAuthError
	require.True(t, errors.As(err, &oauthErr))
	require.Equal(t, CodeAccessDenied, oauthErr.Code)
	require.Equal(t, "The resource owner denied the request", oauthErr.Description)

	_, err = m.CodeFromRedirect(mustURL(t, "http://127.0.0.1:8765/oauth/callback?error=weird_thing"))
	require.True(t, errors.As(err, &oauthErr))
	require.Equal(t, CodeUnknown, oauthErr.Code)

	_, err = m.CodeFromRedirect(mustURL(t, "http://127.0.0.1:8765/oauth/callback"))
	require.True(t, errors.As(err, &oauthErr))
	require.Equal(t, CodeUnknown, oauthErr.Code)
}

func TestCancel(t *testing.T) {
	m := newTestManager(t, "", newMapStore())
	var oauthErr *OAuthError
	require.True(t, errors.As(m.Cancel(), &oauthErr))
	require.Equal(t, CodeUserCanceled, oauthErr.Code)
}

func TestExchange_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "app-123", r.PostForm.Get("client_id"))
		require.Equal(t, "shh", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok-1","token_type":"bearer","scope":"public read_user","created_at":1436544465}`)
	}))
	defer srv.Close()

	store := newMapStore()
	m := newTestManager(t, srv.URL, store)
	ctx := context.Background()
	require.False(t, m.Authorized(ctx))

	token, err := m.Exchange(ctx, "the-code")
	require.NoError(t, err)
	require.Equal(t, "tok-1", token.AccessToken)

	_, ok, _ := store.Get(ctx, "app-123")
	require.True(t, ok)
	require.True(t, m.Authorized(ctx))

	loaded, ok, err := m.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-1", loaded.AccessToken)
	require.Equal(t, "Bearer", loaded.Type())

	fromSource, err := m.TokenSource(ctx).Token()
	require.NoError(t, err)
	require.Equal(t, "tok-1", fromSource.AccessToken)

	require.NoError(t, m.Clear(ctx))
	require.False(t, m.Authorized(ctx))
	_, err = m.TokenSource(ctx).Token()
	require.ErrorIs(t, err, unsplash.ErrNotAuthorized)
}

func TestExchange_MapsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Client authentication failed"}`)
	}))
	defer srv.Close()

	store := newMapStore()
	m := newTestManager(t, srv.URL, store)

	_, err := m.Exchange(context.Background(), "the-code")
	require.True(t, apperrors.IsCode(err, "oauth_exchange_failed"))
	var oauthErr *OAuthError
	require.True(t, errors.As(err, &oauthErr))
	require.Equal(t, CodeInvalidClient, oauthErr.Code)
	require.Equal(t, "Client authentication failed", oauthErr.Description)
	require.Empty(t, store.values)
}

func TestExchange_RejectsEmptyCode(t *testing.T) {
	m := newTestManager(t, "", newMapStore())
	_, err := m.Exchange(context.Background(), " ")
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
