package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/unsplash-go/pkg/errors"
	"github.com/yanqian/unsplash-go/pkg/unsplash/auth"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// asHTTPError maps redirect denials to 400 and failed token exchanges to 502.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var oauthErr *auth.OAuthError
	if errors.As(err, &oauthErr) {
		status := http.StatusBadRequest
		if apperrors.IsCode(err, apperrors.CodeOAuthExchangeFailed) {
			status = http.StatusBadGateway
		}
		return &HTTPError{Status: status, Code: oauthErr.Code, Message: oauthErr.Error(), Err: err}
	}
	switch code := apperrors.CodeOf(err); code {
	case apperrors.CodeInvalidRequest:
		return &HTTPError{Status: http.StatusBadRequest, Code: code, Message: err.Error(), Err: err}
	case apperrors.CodeOAuthExchangeFailed:
		return &HTTPError{Status: http.StatusBadGateway, Code: code, Message: err.Error(), Err: err}
	case "":
	default:
		return &HTTPError{Status: http.StatusInternalServerError, Code: code, Message: err.Error(), Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
