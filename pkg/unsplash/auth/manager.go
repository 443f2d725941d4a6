package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
)

const DefaultAuthBaseURL = "https://unsplash.com"

// PublicScope is the read-only scope every application has.
var PublicScope = []string{"public"}

// AllScopes grants read and write access to the user's account.
var AllScopes = []string{
	"public",
	"read_user",
	"write_user",
	"read_photos",
	"write_photos",
	"write_likes",
	"read_collections",
	"write_collections",
}

// Config identifies the application to the authorization server.
type Config struct {
	AppID       string
	Secret      string
	RedirectURL string
	AuthBaseURL string
	Scopes      []string
}

// Manager runs the authorization-code flow and keeps the resulting token in
// a credential store keyed by the app id.
type Manager struct {
	appID      string
	oauth      *oauth2.Config
	store      unsplash.CredentialStore
	logger     *slog.Logger
	httpClient *http.Client
}

// NewManager validates cfg and builds a manager.
func NewManager(cfg Config, store unsplash.CredentialStore, logger *slog.Logger) (*Manager, error) {
	if strings.TrimSpace(cfg.AppID) == "" || strings.TrimSpace(cfg.Secret) == "" {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "unsplash app id and secret are required", nil)
	}
	if strings.TrimSpace(cfg.RedirectURL) == "" {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "oauth redirect url is required", nil)
	}
	if store == nil {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "credential store is required", nil)
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.AuthBaseURL), "/")
	if base == "" {
		base = DefaultAuthBaseURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = AllScopes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		appID: cfg.AppID,
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.Secret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth/authorize",
				TokenURL:  base + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		store:      store,
		logger:     logger.With("component", "oauth"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NewState returns a random value for the state parameter.
func NewState() string {
	return uuid.NewString()
}

// AuthURL is the page the user visits to grant access.
func (m *Manager) AuthURL(state string) string {
	return m.oauth.AuthCodeURL(state)
}

// CodeFromRedirect extracts the authorization code from the redirect the
// server sent the browser to.
func (m *Manager) CodeFromRedirect(u *url.URL) (string, error) {
	q := u.Query()
	if code := q.Get("error"); code != "" {
		return "", newOAuthError(code, q.Get("error_description"))
	}
	code := q.Get("code")
	if code == "" {
		return "", &OAuthError{Code: CodeUnknown, Description: "redirect carried no authorization code"}
	}
	return code, nil
}

// Cancel reports the user abandoning the flow.
func (m *Manager) Cancel() error {
	return &OAuthError{Code: CodeUserCanceled, Description: "user canceled authorization"}
}

type storedToken struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Exchange trades code for an access token and stores it.
func (m *Manager) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "missing oauth code", nil)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
			err = newOAuthError(retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
		}
		m.logger.Warn("oauth exchange failed", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeOAuthExchangeFailed, "failed to exchange oauth code", err)
	}

	scope, _ := token.Extra("scope").(string)
	payload, err := json.Marshal(storedToken{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Scope:        scope,
		Expiry:       token.Expiry,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCredentialStoreFailed, "failed to encode token", err)
	}
	if err := m.store.Set(ctx, m.appID, string(payload)); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCredentialStoreFailed, "failed to persist token", err)
	}
	m.logger.Info("oauth token stored", "scope", scope)
	return token, nil
}

// Token loads the stored token. The boolean is false when none is stored.
func (m *Manager) Token(ctx context.Context) (*oauth2.Token, bool, error) {
	raw, ok, err := m.store.Get(ctx, m.appID)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeCredentialStoreFailed, "failed to load token", err)
	}
	if !ok {
		return nil, false, nil
	}
	var stored storedToken
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeCredentialStoreFailed, "stored token is corrupt", err)
	}
	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		TokenType:    stored.TokenType,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.Expiry,
	}
	return token, true, nil
}

// Authorized reports whether a usable token is stored.
func (m *Manager) Authorized(ctx context.Context) bool {
	token, ok, err := m.Token(ctx)
	return err == nil && ok && token.Valid()
}

// Clear forgets the stored token.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx, m.appID); err != nil {
		return apperrors.Wrap(apperrors.CodeCredentialStoreFailed, "failed to clear token", err)
	}
	return nil
}

// TokenSource feeds the stored token to a client. The store is read once,
// on first use.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &storeTokenSource{ctx: ctx, manager: m})
}

type storeTokenSource struct {
	ctx     context.Context
	manager *Manager
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	token, ok, err := s.manager.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, unsplash.ErrNotAuthorized
	}
	return token, nil
}
