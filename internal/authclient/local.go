package authclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const minPasswordLength = 8

type localUser struct {
	id           string
	name         string
	email        string
	passwordHash []byte
}

// sessionClaims is the JWT payload issued by LocalClient.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LocalClient is an in-process authentication service used for development
// and tests. It keeps users in memory and issues HS256 session tokens.
type LocalClient struct {
	mu        sync.RWMutex
	users     map[string]*localUser
	sessions  SessionStore
	secret    []byte
	ttl       time.Duration
	providers map[string]config.SocialProvider
	validate  *validator.Validate
	now       func() time.Time
}

// LocalOptions configures a LocalClient.
type LocalOptions struct {
	Secret     string
	SessionTTL time.Duration
	Sessions   SessionStore
	Providers  []config.SocialProvider
}

// NewLocalClient creates a LocalClient. A nil session store defaults to memory.
func NewLocalClient(opts LocalOptions) *LocalClient {
	if opts.Sessions == nil {
		opts.Sessions = NewMemorySessionStore()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	providers := make(map[string]config.SocialProvider, len(opts.Providers))
	for _, p := range opts.Providers {
		providers[p.Name] = p
	}
	return &LocalClient{
		users:     make(map[string]*localUser),
		sessions:  opts.Sessions,
		secret:    []byte(opts.Secret),
		ttl:       opts.SessionTTL,
		providers: providers,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// SignUpEmail creates the user and opens a session for them.
func (c *LocalClient) SignUpEmail(ctx context.Context, params domain.SignUpParams) (*domain.SignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if err := c.validate.Var(email, "required,email"); err != nil {
		return nil, &domain.ClientError{Status: http.StatusBadRequest, Code: "INVALID_EMAIL", Message: "Invalid email"}
	}
	if len(params.Password) < minPasswordLength {
		return nil, &domain.ClientError{Status: http.StatusBadRequest, Code: "PASSWORD_TOO_SHORT", Message: "Password too short"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c.mu.Lock()
	if _, exists := c.users[email]; exists {
		c.mu.Unlock()
		return nil, &domain.ClientError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "USER_ALREADY_EXISTS",
			Message: "User already exists",
			Err:     domain.ErrUserAlreadyExists,
		}
	}
	user := &localUser{
		id:           uuid.NewString(),
		name:         params.Name,
		email:        email,
		passwordHash: hash,
	}
	c.users[email] = user
	c.mu.Unlock()

	slog.Debug("local user created", "user_id", user.id)

	token, err := c.openSession(ctx, user)
	if err != nil {
		// Without a session the sign-up did not happen; let the user retry.
		c.mu.Lock()
		if c.users[email] == user {
			delete(c.users, email)
		}
		c.mu.Unlock()
		return nil, err
	}
	return &domain.SignInResult{Token: token}, nil
}

// SignInEmail checks the password and opens a session.
func (c *LocalClient) SignInEmail(ctx context.Context, params domain.SignInParams) (*domain.SignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	c.mu.RLock()
	user, ok := c.users[email]
	c.mu.RUnlock()

	invalid := &domain.ClientError{
		Status:  http.StatusUnauthorized,
		Code:    "INVALID_EMAIL_OR_PASSWORD",
		Message: "Invalid email or password",
		Err:     domain.ErrInvalidCredentials,
	}
	if !ok {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(params.Password)); err != nil {
		return nil, invalid
	}

	token, err := c.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &domain.SignInResult{Token: token, RedirectURL: params.CallbackURL}, nil
}

// SignInSocial returns the provider's authorization URL. Completing the
// OAuth callback is the provider integration's job, not this client's.
func (c *LocalClient) SignInSocial(_ context.Context, params domain.SocialParams) (*domain.SocialResult, error) {
	notFound := &domain.ClientError{
		Status:  http.StatusNotFound,
		Code:    "PROVIDER_NOT_FOUND",
		Message: "Provider not found",
		Err:     domain.ErrUnknownProvider,
	}
	if !domain.IsSocialProvider(params.Provider) {
		return nil, notFound
	}
	provider, ok := c.providers[params.Provider]
	if !ok {
		return nil, notFound
	}

	oauthConfig := &oauth2.Config{
		ClientID:    provider.ClientID,
		RedirectURL: provider.RedirectURI,
		Scopes:      provider.Scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: provider.AuthURL},
	}
	return &domain.SocialResult{RedirectURL: oauthConfig.AuthCodeURL(uuid.NewString())}, nil
}

// SignOut revokes the session behind token. Unknown tokens and sessions
// that are already gone are ignored.
func (c *LocalClient) SignOut(ctx context.Context, token string) error {
	claims, err := c.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := c.sessions.Delete(ctx, claims.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// GetSession resolves a token. Invalid, expired or revoked tokens yield nil.
func (c *LocalClient) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := c.parse(token, jwt.WithTimeFunc(c.now))
	if err != nil {
		slog.Debug("rejecting session token", "error", err)
		return nil, nil
	}
	live, err := c.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, nil
	}
	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return &domain.Session{
		ID:        claims.ID,
		Token:     token,
		UserID:    claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		ExpiresAt: expires,
	}, nil
}

// Close releases the session store.
func (c *LocalClient) Close() error { return c.sessions.Close() }

func (c *LocalClient) openSession(ctx context.Context, user *localUser) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Name:  user.name,
		Email: user.email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	if err := c.sessions.Save(ctx, claims.ID, c.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (c *LocalClient) parse(token string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token has no session id")
	}
	return claims, nil
}
