package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider exposes configuration through getters so handlers and tests can
// depend on an interface instead of the concrete struct.
type Provider interface {
	GetAddr() string
	GetSessionSecret() string
	GetAuthClient() string
	GetAuthServiceURL() string
	GetAuthJWTSecret() string
	GetSessionTTL() time.Duration
	GetSessionStore() string
	GetSessionCacheTTL() time.Duration
	GetRedisAddr() string
	GetSocialProvider(name string) (SocialProvider, bool)
	GetLogFormat() string
	GetLogLevel() string
	GetTracingEnabled() bool
	GetTracingServiceName() string
	GetZipkinURL() string
}

// SocialProvider holds the OAuth client registration for one provider.
type SocialProvider struct {
	Name        string
	ClientID    string
	RedirectURI string
	AuthURL     string
	Scopes      []string
}

// Config holds all configuration for the application.
type Config struct {
	Addr           string        `env:"APP_ADDR" envDefault:":8080"`
	AppBaseURL     string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	AuthClient     string        `env:"AUTH_CLIENT" envDefault:"memory"`
	AuthServiceURL string        `env:"AUTH_SERVICE_URL"`
	AuthJWTSecret  string        `env:"AUTH_JWT_SECRET"`
	SessionTTL     time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	SessionStore   string        `env:"AUTH_SESSION_STORE" envDefault:"memory"`
	// SessionCacheTTL bounds how long the remote client reuses a resolved session.
	SessionCacheTTL time.Duration `env:"AUTH_SESSION_CACHE_TTL" envDefault:"30s"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	GitHubClientID    string   `env:"GITHUB_CLIENT_ID"`
	GitHubRedirectURI string   `env:"GITHUB_REDIRECT_URI"`
	GitHubScopes      []string `env:"GITHUB_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
	GoogleClientID    string   `env:"GOOGLE_CLIENT_ID"`
	GoogleRedirectURI string   `env:"GOOGLE_REDIRECT_URI"`
	GoogleScopes      []string `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`

	TracingEnabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingServiceName string `env:"TRACING_SERVICE_NAME" envDefault:"gobyauth"`
	ZipkinURL          string `env:"TRACING_ZIPKIN_URL" envDefault:"http://localhost:9411/api/v2/spans"`
}

// New loads configuration from the .env file (if any) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return Load()
}

// Load parses the current environment without touching .env files.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("required environment variable SESSION_SECRET is not set")
	}
	switch c.AuthClient {
	case "memory":
		if c.AuthJWTSecret == "" {
			c.AuthJWTSecret = c.SessionSecret
		}
	case "remote":
		if c.AuthServiceURL == "" {
			return errors.New("AUTH_CLIENT is 'remote' but AUTH_SERVICE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown auth client: %s", c.AuthClient)
	}
	if c.SessionStore != "memory" && c.SessionStore != "redis" {
		return fmt.Errorf("unknown session store: %s", c.SessionStore)
	}
	return nil
}

func (c *Config) GetAddr() string                   { return c.Addr }
func (c *Config) GetSessionSecret() string          { return c.SessionSecret }
func (c *Config) GetAuthClient() string             { return c.AuthClient }
func (c *Config) GetAuthServiceURL() string         { return c.AuthServiceURL }
func (c *Config) GetAuthJWTSecret() string          { return c.AuthJWTSecret }
func (c *Config) GetSessionTTL() time.Duration      { return c.SessionTTL }
func (c *Config) GetSessionStore() string           { return c.SessionStore }
func (c *Config) GetSessionCacheTTL() time.Duration { return c.SessionCacheTTL }
func (c *Config) GetRedisAddr() string              { return c.RedisAddr }
func (c *Config) GetLogFormat() string              { return c.LogFormat }
func (c *Config) GetLogLevel() string               { return c.LogLevel }
func (c *Config) GetTracingEnabled() bool           { return c.TracingEnabled }
func (c *Config) GetTracingServiceName() string     { return c.TracingServiceName }
func (c *Config) GetZipkinURL() string              { return c.ZipkinURL }

// GetSocialProvider returns the registration for a provider. A provider
// without a client id is treated as not configured. Without an explicit
// redirect URI the callback is served from APP_BASE_URL.
func (c *Config) GetSocialProvider(name string) (SocialProvider, bool) {
	var p SocialProvider
	switch name {
	case "github":
		p = SocialProvider{
			Name:        name,
			ClientID:    c.GitHubClientID,
			RedirectURI: c.GitHubRedirectURI,
			AuthURL:     "https://github.com/login/oauth/authorize",
			Scopes:      c.GitHubScopes,
		}
	case "google":
		p = SocialProvider{
			Name:        name,
			ClientID:    c.GoogleClientID,
			RedirectURI: c.GoogleRedirectURI,
			AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
			Scopes:      c.GoogleScopes,
		}
	default:
		return SocialProvider{}, false
	}
	if p.ClientID == "" {
		return SocialProvider{}, false
	}
	if p.RedirectURI == "" && c.AppBaseURL != "" {
		p.RedirectURI = strings.TrimSuffix(c.AppBaseURL, "/") + "/api/auth/callback/" + name
	}
	return p, true
}
