// Package apierrors defines the user-visible error vocabulary of the API.
// Internal failures are wrapped with fmt.Errorf elsewhere; only these kinds
// ever reach a response payload.
package apierrors

import "net/http"

// APIError carries a stable error kind, its transport status code and the
// message shown to the client. Details holds nested validation messages.
type APIError struct {
	Kind       string
	HTTPStatus int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	return e.Message
}

// Messages reports the client-facing error list: the nested validation
// messages when present, otherwise the single message.
func (e *APIError) Messages() []string {
	if len(e.Details) > 0 {
		return e.Details
	}
	return []string{e.Message}
}

const (
	KindInvalidCredentials = "InvalidCredentials"
	KindEmailNotConfirmed  = "EmailNotConfirmed"
	KindEmailAlreadyInUse  = "EmailAlreadyInUse"
	KindUserCreationFailed = "UserCreationFailed"
	KindInvalidToken       = "InvalidToken"
	KindTokenExpired       = "TokenExpired"
	KindInternalError      = "InternalError"
)

// NewErrInvalidCredentials covers both unknown user and wrong password.
// The collapsed message is deliberate anti-enumeration behavior.
func NewErrInvalidCredentials() *APIError {
	return &APIError{
		Kind:       KindInvalidCredentials,
		HTTPStatus: http.StatusUnauthorized,
		Message:    "Invalid credentials",
	}
}

func NewErrEmailNotConfirmed() *APIError {
	return &APIError{
		Kind:       KindEmailNotConfirmed,
		HTTPStatus: http.StatusUnauthorized,
		Message:    "Email needs to be confirmed",
	}
}

func NewErrEmailAlreadyInUse() *APIError {
	return &APIError{
		Kind:       KindEmailAlreadyInUse,
		HTTPStatus: http.StatusBadRequest,
		Message:    "Email already in use",
	}
}

// NewErrUserCreationFailed surfaces credential-store validation messages
// verbatim.
func NewErrUserCreationFailed(details ...string) *APIError {
	return &APIError{
		Kind:       KindUserCreationFailed,
		HTTPStatus: http.StatusBadRequest,
		Message:    "User couldn't be created",
		Details:    details,
	}
}

func NewErrInvalidToken() *APIError {
	return &APIError{
		Kind:       KindInvalidToken,
		HTTPStatus: http.StatusBadRequest,
		Message:    "Invalid Token",
	}
}

func NewErrTokenExpired() *APIError {
	return &APIError{
		Kind:       KindTokenExpired,
		HTTPStatus: http.StatusBadRequest,
		Message:    "Token Expired",
	}
}

// NewErrInternal hides the underlying cause from the client.
func NewErrInternal() *APIError {
	return &APIError{
		Kind:       KindInternalError,
		HTTPStatus: http.StatusInternalServerError,
		Message:    "Something went wrong",
	}
}
