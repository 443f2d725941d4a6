package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const callbackPage = "Authorization complete. You can close this window and return to the terminal.\n"

// CodeExchanger turns the browser redirect into a stored token.
// *auth.Manager satisfies it.
type CodeExchanger interface {
	CodeFromRedirect(u *url.URL) (string, error)
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// LoginResult is the outcome of one authorization attempt.
type LoginResult struct {
	Token *oauth2.Token
	Err   error
}

// CallbackHandler receives the OAuth redirect for a single login.
type CallbackHandler struct {
	exchanger CodeExchanger
	state     *stateGuard
	logger    *slog.Logger
	results   chan LoginResult
	once      sync.Once
}

// NewCallbackHandler accepts redirects carrying state.
func NewCallbackHandler(exchanger CodeExchanger, state string, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		exchanger: exchanger,
		state:     newStateGuard(state),
		logger:    logger.With("component", "http.callback"),
		results:   make(chan LoginResult, 1),
	}
}

// Results yields exactly one LoginResult.
func (h *CallbackHandler) Results() <-chan LoginResult {
	return h.results
}

func (h *CallbackHandler) report(res LoginResult) {
	h.once.Do(func() {
		h.results <- res
	})
}

// Callback handles GET /oauth/callback.
func (h *CallbackHandler) Callback(c *gin.Context) {
	if !h.state.consume(c.Query("state")) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_state", "state does not match this login", nil))
		return
	}

	code, err := h.exchanger.CodeFromRedirect(c.Request.URL)
	if err != nil {
		h.report(LoginResult{Err: err})
		abortWithError(c, asHTTPError(err))
		return
	}

	token, err := h.exchanger.Exchange(c.Request.Context(), code)
	if err != nil {
		h.report(LoginResult{Err: err})
		abortWithError(c, asHTTPError(err))
		return
	}

	h.logger.Info("login completed")
	h.report(LoginResult{Token: token})
	c.String(http.StatusOK, callbackPage)
}
