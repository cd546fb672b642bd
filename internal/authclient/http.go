package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/patrickmn/go-cache"
)

// headerAuthToken is how the service hands back a bearer token for the
// session it just opened.
const headerAuthToken = "Set-Auth-Token"

// HTTPClient talks to the external authentication service over its JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	// sessions caches live sessions by token; nil disables caching.
	sessions *cache.Cache
	cacheTTL time.Duration
}

// NewHTTPClient creates a client for the service rooted at baseURL
// (e.g. "https://auth.example.com/api/auth"). A nil http.Client gets a
// default with a 10 second timeout.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type apiUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type apiSession struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authResponse struct {
	Token    *string  `json:"token"`
	Redirect bool     `json:"redirect"`
	URL      *string  `json:"url"`
	User     *apiUser `json:"user"`
}

type sessionResponse struct {
	Session apiSession `json:"session"`
	User    apiUser    `json:"user"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WithSessionCache keeps resolved sessions for up to ttl (never past the
// session's own expiry), so page loads don't each cost a round trip to the
// service. Sign-out evicts the token. A ttl <= 0 leaves caching off.
func (c *HTTPClient) WithSessionCache(ttl time.Duration) *HTTPClient {
	if ttl <= 0 {
		return c
	}
	c.sessions = cache.New(ttl, 2*ttl)
	c.cacheTTL = ttl
	return c
}

// SignUpEmail implements domain.AuthClient.
func (c *HTTPClient) SignUpEmail(ctx context.Context, params domain.SignUpParams) (*domain.SignInResult, error) {
	var out authResponse
	header, err := c.do(ctx, http.MethodPost, "/sign-up/email", "", params, &out)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return &domain.SignInResult{Token: tokenFrom(header, out)}, nil
}

// SignInEmail implements domain.AuthClient.
func (c *HTTPClient) SignInEmail(ctx context.Context, params domain.SignInParams) (*domain.SignInResult, error) {
	var out authResponse
	header, err := c.do(ctx, http.MethodPost, "/sign-in/email", "", params, &out)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	result := &domain.SignInResult{Token: tokenFrom(header, out), RedirectURL: params.CallbackURL}
	if out.URL != nil && *out.URL != "" {
		result.RedirectURL = *out.URL
	}
	return result, nil
}

// SignInSocial implements domain.AuthClient.
func (c *HTTPClient) SignInSocial(ctx context.Context, params domain.SocialParams) (*domain.SocialResult, error) {
	var out authResponse
	if _, err := c.do(ctx, http.MethodPost, "/sign-in/social", "", params, &out); err != nil {
		return nil, fmt.Errorf("social sign in: %w", err)
	}
	if out.URL == nil || *out.URL == "" {
		return nil, errors.New("social sign in: response has no provider url")
	}
	return &domain.SocialResult{RedirectURL: *out.URL}, nil
}

// SignOut implements domain.AuthClient.
func (c *HTTPClient) SignOut(ctx context.Context, token string) error {
	if c.sessions != nil {
		c.sessions.Delete(token)
	}
	if _, err := c.do(ctx, http.MethodPost, "/sign-out", token, struct{}{}, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// GetSession implements domain.AuthClient. The service answers with a JSON
// null when there is no session; a 401 is treated the same way.
func (c *HTTPClient) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	if c.sessions != nil {
		if cached, found := c.sessions.Get(token); found {
			return cached.(*domain.Session), nil
		}
	}
	var out *sessionResponse
	if _, err := c.do(ctx, http.MethodGet, "/get-session", token, nil, &out); err != nil {
		var ce *domain.ClientError
		if errors.As(err, &ce) && ce.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if out == nil {
		return nil, nil
	}
	sess := &domain.Session{
		ID:        out.Session.ID,
		Token:     token,
		UserID:    out.Session.UserID,
		Name:      out.User.Name,
		Email:     out.User.Email,
		ExpiresAt: out.Session.ExpiresAt,
	}
	c.cacheSession(sess)
	return sess, nil
}

func (c *HTTPClient) cacheSession(sess *domain.Session) {
	if c.sessions == nil {
		return
	}
	ttl := c.cacheTTL
	if !sess.ExpiresAt.IsZero() {
		ttl = min(ttl, time.Until(sess.ExpiresAt))
	}
	if ttl > 0 {
		c.sessions.Set(sess.Token, sess, ttl)
	}
}

// Close is a no-op; it lets the server treat every client the same way.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) (http.Header, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.Header, nil
}

func decodeError(resp *http.Response) error {
	ce := &domain.ClientError{Status: resp.StatusCode}

	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		ce.Code = payload.Code
		ce.Message = payload.Message
	}
	if ce.Message == "" {
		ce.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case ce.Code == "USER_ALREADY_EXISTS":
		ce.Err = domain.ErrUserAlreadyExists
	case ce.Code == "PROVIDER_NOT_FOUND":
		ce.Err = domain.ErrUnknownProvider
	case resp.StatusCode == http.StatusUnauthorized:
		ce.Err = domain.ErrInvalidCredentials
	}
	return ce
}

func tokenFrom(header http.Header, out authResponse) string {
	if t := header.Get(headerAuthToken); t != "" {
		return t
	}
	if out.Token != nil {
		return *out.Token
	}
	return ""
}
