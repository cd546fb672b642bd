package domain

import (
	"context"
	"time"
)

// Session is the authenticated-user handle returned by the authentication
// service. Views only ever read Name.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignUpParams carries the sign-up form values, untouched, to the client.
type SignUpParams struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SignInParams carries the sign-in form values to the client.
type SignInParams struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackURL,omitempty"`
}

// SocialParams starts a social sign-in flow with one of the fixed providers.
type SocialParams struct {
	Provider    string `json:"provider"`
	CallbackURL string `json:"callbackURL,omitempty"`
}

// SignInResult is returned by the email flows. Token is empty when the
// service did not open a session.
type SignInResult struct {
	Token       string
	RedirectURL string
}

// SocialResult holds the provider URL the browser must be sent to.
type SocialResult struct {
	RedirectURL string
}

// AuthClient is the boundary to the external authentication service.
// It lives in the domain because the views depend on it, not on any
// particular transport.
type AuthClient interface {
	SignUpEmail(ctx context.Context, params SignUpParams) (*SignInResult, error)
	SignInEmail(ctx context.Context, params SignInParams) (*SignInResult, error)
	SignInSocial(ctx context.Context, params SocialParams) (*SocialResult, error)
	SignOut(ctx context.Context, token string) error
	// GetSession returns nil, nil when the token has no live session.
	GetSession(ctx context.Context, token string) (*Session, error)
}
