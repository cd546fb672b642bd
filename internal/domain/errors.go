package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common authentication failures.
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownProvider    = errors.New("provider not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// ClientError is an error reported by the authentication service. Message is
// the text the service wants shown to the user.
type ClientError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth service: %s (%s)", e.Message, e.Code)
	}
	return "auth service: " + e.Message
}

func (e *ClientError) Unwrap() error { return e.Err }

// UserMessage extracts the text to display for a failed sign-in. Service
// errors keep their own wording; anything else collapses to the sentinel's
// message or a generic fallback.
func UserMessage(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrUserAlreadyExists):
		return "User already exists"
	case errors.Is(err, ErrUnknownProvider):
		return "Provider not found"
	}
	return "Something went wrong"
}
