package authclient

import (
	"fmt"

	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Client is an AuthClient that owns resources to release on shutdown.
type Client interface {
	domain.AuthClient
	Close() error
}

// NewClient creates and returns an authentication client based on the configuration.
func NewClient(cfg config.Provider) (Client, error) {
	switch cfg.GetAuthClient() {
	case "remote":
		if cfg.GetAuthServiceURL() == "" {
			return nil, fmt.Errorf("auth client is 'remote' but AUTH_SERVICE_URL is not set")
		}
		return NewHTTPClient(cfg.GetAuthServiceURL(), nil).WithSessionCache(cfg.GetSessionCacheTTL()), nil
	case "memory":
		store, err := newSessionStore(cfg)
		if err != nil {
			return nil, err
		}
		var providers []config.SocialProvider
		for _, name := range domain.SocialProviders {
			if p, ok := cfg.GetSocialProvider(name); ok {
				providers = append(providers, p)
			}
		}
		return NewLocalClient(LocalOptions{
			Secret:     cfg.GetAuthJWTSecret(),
			SessionTTL: cfg.GetSessionTTL(),
			Sessions:   store,
			Providers:  providers,
		}), nil
	default:
		return nil, fmt.Errorf("unknown auth client: %s", cfg.GetAuthClient())
	}
}

func newSessionStore(cfg config.Provider) (SessionStore, error) {
	switch cfg.GetSessionStore() {
	case "memory":
		return NewMemorySessionStore(), nil
	case "redis":
		return NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})), nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.GetSessionStore())
	}
}
