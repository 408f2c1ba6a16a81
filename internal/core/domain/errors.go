package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDuplicateAccount = errors.New("account already exists")
var ErrTokenMissing = errors.New("auth token missing from response")
var ErrNotFound = errors.New("not found")

// unreachableMessage is shown whenever no HTTP response was received. It is
// deliberately distinct from any backend-supplied business message.
const unreachableMessage = "server not reachable, please try again later"

const fallbackMessage = "something went wrong, please try again"

// APIError is the single normalized failure shape produced at the gateway
// boundary. Status is 0 when no HTTP response was received at all.
type APIError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// NewUnreachableError reports the absence of any HTTP response, never to be
// conflated with a 4xx business error.
func NewUnreachableError() *APIError {
	return &APIError{Message: unreachableMessage}
}

// NewStatusError builds the error for a non-2xx response. An empty message
// falls back to a generic one so no raw error object reaches the user.
func NewStatusError(status int, message string) *APIError {
	if message == "" {
		message = fallbackMessage
	}
	return &APIError{Status: status, Message: message}
}

// Unreachable reports whether err represents an absent HTTP response.
func Unreachable(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == 0
}

// Unauthorized reports whether err is a 401 rejection.
func Unauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}
