package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/unsplash-go/internal/infra/config"
)

// CallbackPath is where the authorization server redirects the browser.
const CallbackPath = "/oauth/callback"

// NewCallbackServer wires the callback handler into a loopback server.
func NewCallbackServer(cfg config.CallbackConfig, handler *CallbackHandler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
	)
	router.GET(CallbackPath, handler.Callback)

	return &http.Server{
		Addr:           cfg.Address,
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
