package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/unsplash-go/internal/infra/config"
	"github.com/yanqian/unsplash-go/internal/infra/credstore"
	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
	"github.com/yanqian/unsplash-go/pkg/unsplash/auth"
)

func TestLogin_NotConfigured(t *testing.T) {
	app := newAppUnderTest(t, "127.0.0.1:0", nil)

	err := app.Login(context.Background(), io.Discard)
	require.True(t, apperrors.IsCode(err, apperrors.CodeAuthNotConfigured))
	require.True(t, apperrors.IsCode(app.Logout(context.Background()), apperrors.CodeAuthNotConfigured))
	require.False(t, app.LoggedIn(context.Background()))
}

func TestLogin_Canceled(t *testing.T) {
	manager := newManager(t, "http://127.0.0.1:1", "http://127.0.0.1:1/oauth/callback")
	app := newAppUnderTest(t, "127.0.0.1:0", manager)

	ctx, cancel := context.WithCancel(context.Background())
	out := newLineWriter()
	done := make(chan error, 1)
	go func() { done <- app.Login(ctx, out) }()

	<-out.first
	cancel()

	select {
	case err := <-done:
		var oauthErr *auth.OAuthError
		require.ErrorAs(t, err, &oauthErr)
		require.Equal(t, auth.CodeUserCanceled, oauthErr.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("login did not return after cancel")
	}
}

func TestLogin_CompletesOnRedirect(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"user-token","token_type":"bearer","scope":"public"}`)
	}))
	t.Cleanup(tokenServer.Close)

	addr := freeAddr(t)
	manager := newManager(t, tokenServer.URL, "http://"+addr+"/oauth/callback")
	app := newAppUnderTest(t, addr, manager)

	out := newLineWriter()
	done := make(chan error, 1)
	go func() { done <- app.Login(context.Background(), out) }()

	printed := <-out.first
	start := strings.Index(printed, "http")
	require.GreaterOrEqual(t, start, 0)
	authURL, err := url.Parse(strings.TrimSpace(printed[start:]))
	require.NoError(t, err)
	state := authURL.Query().Get("state")
	require.NotEmpty(t, state)

	resp, err := http.Get("http://" + addr + "/oauth/callback?code=abc&state=" + url.QueryEscape(state))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("login did not complete")
	}
	require.True(t, app.LoggedIn(context.Background()))

	require.NoError(t, app.Logout(context.Background()))
	require.False(t, app.LoggedIn(context.Background()))
}

func newAppUnderTest(t *testing.T, addr string, manager *auth.Manager) *App {
	t.Helper()
	client, err := unsplash.NewClient(unsplash.Config{AppID: "app"})
	require.NoError(t, err)
	cfg := &config.Config{
		Callback: config.CallbackConfig{
			Address:      addr,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	app := NewApp(cfg, newTestLogger(), client, manager)
	t.Cleanup(app.Close)
	return app
}

func newManager(t *testing.T, authBase, redirect string) *auth.Manager {
	t.Helper()
	manager, err := auth.NewManager(auth.Config{
		AppID:       "app",
		Secret:      "secret",
		RedirectURL: redirect,
		AuthBaseURL: authBase,
	}, credstore.NewMemoryStore(), newTestLogger())
	require.NoError(t, err)
	return manager
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// lineWriter hands the first write to the test.
type lineWriter struct {
	first chan string
}

func newLineWriter() *lineWriter {
	return &lineWriter{first: make(chan string, 1)}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	select {
	case w.first <- string(p):
	default:
	}
	return len(p), nil
}
