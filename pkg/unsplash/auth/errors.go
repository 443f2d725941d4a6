package auth

import "fmt"

// OAuth error codes reported by the authorization server, plus the local
// user_canceled and the catch-all unknown.
const (
	CodeUnauthorizedClient      = "unauthorized_client"
	CodeAccessDenied            = "access_denied"
	CodeUnsupportedResponseType = "unsupported_response_type"
	CodeInvalidScope            = "invalid_scope"
	CodeServerError             = "server_error"
	CodeInvalidClient           = "invalid_client"
	CodeInvalidRequest          = "invalid_request"
	CodeInvalidGrant            = "invalid_grant"
	CodeTemporarilyUnavailable  = "temporarily_unavailable"
	CodeUserCanceled            = "user_canceled"
	CodeUnknown                 = "unknown"
)

var knownCodes = map[string]struct{}{
	CodeUnauthorizedClient:      {},
	CodeAccessDenied:            {},
	CodeUnsupportedResponseType: {},
	CodeInvalidScope:            {},
	CodeServerError:             {},
	CodeInvalidClient:           {},
	CodeInvalidRequest:          {},
	CodeInvalidGrant:            {},
	CodeTemporarilyUnavailable:  {},
}

// OAuthError is a failed authorization step.
type OAuthError struct {
	Code        string
	Description string
}

func (e *OAuthError) Error() string {
	if e.Description == "" {
		return "oauth: " + e.Code
	}
	return fmt.Sprintf("oauth: %s: %s", e.Code, e.Description)
}

func newOAuthError(code, description string) *OAuthError {
	if _, ok := knownCodes[code]; !ok {
		code = CodeUnknown
	}
	return &OAuthError{Code: code, Description: description}
}
