package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yanqian/unsplash-go/internal/infra/config"
	httpiface "github.com/yanqian/unsplash-go/internal/interface/http"
	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
	"github.com/yanqian/unsplash-go/pkg/unsplash/auth"
)

// App owns the API client and, when OAuth is configured, the auth manager.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *unsplash.Client
	manager *auth.Manager
}

// NewApp is used by Wire to build the runnable app. manager may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, client *unsplash.Client, manager *auth.Manager) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), client: client, manager: manager}
}

func (a *App) Client() *unsplash.Client {
	return a.client
}

// Close waits for in-flight API calls.
func (a *App) Close() {
	a.client.Close()
}

func (a *App) authManager() (*auth.Manager, error) {
	if a.manager == nil {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "set unsplash.secret and unsplash.redirectUrl to log in", nil)
	}
	return a.manager, nil
}

// Login runs the authorization-code flow: it serves the callback, prints the
// authorization URL to out and blocks until the redirect arrives or ctx ends.
func (a *App) Login(ctx context.Context, out io.Writer) error {
	manager, err := a.authManager()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", a.cfg.Callback.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Callback.Address, err)
	}

	state := auth.NewState()
	handler := httpiface.NewCallbackHandler(manager, state, a.logger)
	server := httpiface.NewCallbackServer(a.cfg.Callback, handler, a.logger)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("callback server starting", "address", listener.Addr().String())
		if err := server.Serve(listener); err != nil {
			errCh <- err
		}
	}()
	defer a.shutdown(server)

	if _, err := fmt.Fprintf(out, "Open this URL in your browser to authorize:\n\n  %s\n\n", manager.AuthURL(state)); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		a.logger.Info("login canceled")
		return manager.Cancel()
	case res := <-handler.Results():
		if res.Err != nil {
			return res.Err
		}
		_, err := fmt.Fprintln(out, "Logged in.")
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdown(server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("callback server shutdown failed", "error", err)
	}
}

// Logout forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	manager, err := a.authManager()
	if err != nil {
		return err
	}
	return manager.Clear(ctx)
}

// LoggedIn reports whether a usable token is stored.
func (a *App) LoggedIn(ctx context.Context) bool {
	return a.manager != nil && a.manager.Authorized(ctx)
}
