package authclient

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		client, err := NewClient(&config.Config{
			AuthClient:      "remote",
			AuthServiceURL:  "http://auth.internal/api/auth/",
			SessionCacheTTL: 30 * time.Second,
		})
		require.NoError(t, err)
		remote, ok := client.(*HTTPClient)
		require.True(t, ok)
		assert.Equal(t, "http://auth.internal/api/auth", remote.baseURL)
		assert.NotNil(t, remote.sessions)
	})

	t.Run("memory with redis sessions", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := NewClient(&config.Config{
			AuthClient:     "memory",
			AuthJWTSecret:  "secret",
			SessionTTL:     time.Hour,
			SessionStore:   "redis",
			RedisAddr:      mr.Addr(),
			GitHubClientID: "gh-client",
		})
		require.NoError(t, err)
		defer client.Close()

		local, ok := client.(*LocalClient)
		require.True(t, ok)
		assert.IsType(t, &RedisSessionStore{}, local.sessions)
		assert.Contains(t, local.providers, "github")
		assert.NotContains(t, local.providers, "google")
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := NewClient(&config.Config{AuthClient: "ldap"})
		assert.ErrorContains(t, err, "unknown auth client")
	})

	t.Run("unknown session store", func(t *testing.T) {
		_, err := NewClient(&config.Config{AuthClient: "memory", SessionStore: "etcd"})
		assert.ErrorContains(t, err, "unknown session store")
	})
}
