package errors

import "errors"

// Codes shared by configuration, OAuth and credential storage failures.
const (
	CodeInvalidConfig         = "invalid_config"
	CodeAuthNotConfigured     = "auth_not_configured"
	CodeOAuthExchangeFailed   = "oauth_exchange_failed"
	CodeInvalidRequest        = "invalid_request"
	CodeCredentialStoreFailed = "credential_store_failed"
)

// AppError encodes failures outside the API call taxonomy.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries an AppError with code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost AppError in err, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
