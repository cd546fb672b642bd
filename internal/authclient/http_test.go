package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService is a minimal stand-in for the authentication service API.
func fakeAuthService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /sign-up/email", func(w http.ResponseWriter, r *http.Request) {
		var in domain.SignUpParams
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Email == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":"USER_ALREADY_EXISTS","message":"User already exists"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"signup-token","user":{"id":"u1","name":"` + in.Name + `","email":"` + in.Email + `"}}`))
	})

	mux.HandleFunc("POST /sign-in/email", func(w http.ResponseWriter, r *http.Request) {
		var in domain.SignInParams
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "/", in.CallbackURL)
		if in.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"INVALID_EMAIL_OR_PASSWORD","message":"Invalid credentials"}`))
			return
		}
		w.Header().Set("Set-Auth-Token", "header-token")
		_, _ = w.Write([]byte(`{"redirect":true,"token":"body-token","url":null,"user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
	})

	mux.HandleFunc("POST /sign-in/social", func(w http.ResponseWriter, r *http.Request) {
		var in domain.SocialParams
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Provider != "github" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"PROVIDER_NOT_FOUND","message":"Provider not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"url":"https://github.com/login/oauth/authorize?state=x","redirect":true}`))
	})

	mux.HandleFunc("POST /sign-out", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer live-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	mux.HandleFunc("GET /get-session", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer live-token":
			_, _ = w.Write([]byte(`{"session":{"id":"s1","token":"live-token","userId":"u1","expiresAt":"2030-01-01T00:00:00Z"},"user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
		case "Bearer revoked-token":
			w.WriteHeader(http.StatusUnauthorized)
		case "Bearer broken-token":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`null`))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_SignUpEmail(t *testing.T) {
	srv := fakeAuthService(t)
	client := NewHTTPClient(srv.URL+"/", nil)
	ctx := context.Background()

	res, err := client.SignUpEmail(ctx, domain.SignUpParams{Email: "ada@example.com", Name: "Ada", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "signup-token", res.Token)

	_, err = client.SignUpEmail(ctx, domain.SignUpParams{Email: "taken@example.com", Name: "Ada", Password: "password123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUserAlreadyExists))
}

func TestHTTPClient_SignInEmail(t *testing.T) {
	srv := fakeAuthService(t)
	client := NewHTTPClient(srv.URL, srv.Client())
	ctx := context.Background()

	res, err := client.SignInEmail(ctx, domain.SignInParams{Email: "ada@example.com", Password: "password123", CallbackURL: "/"})
	require.NoError(t, err)
	assert.Equal(t, "header-token", res.Token, "the bearer header wins over the body")
	assert.Equal(t, "/", res.RedirectURL)

	_, err = client.SignInEmail(ctx, domain.SignInParams{Email: "ada@example.com", Password: "wrong", CallbackURL: "/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, "Invalid credentials", domain.UserMessage(err))
}

func TestHTTPClient_SignInSocial(t *testing.T) {
	srv := fakeAuthService(t)
	client := NewHTTPClient(srv.URL, srv.Client())
	ctx := context.Background()

	res, err := client.SignInSocial(ctx, domain.SocialParams{Provider: "github", CallbackURL: "/"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/login/oauth/authorize?state=x", res.RedirectURL)

	_, err = client.SignInSocial(ctx, domain.SocialParams{Provider: "google", CallbackURL: "/"})
	assert.True(t, errors.Is(err, domain.ErrUnknownProvider))
}

func TestHTTPClient_Sessions(t *testing.T) {
	srv := fakeAuthService(t)
	client := NewHTTPClient(srv.URL, srv.Client())
	ctx := context.Background()

	sess, err := client.GetSession(ctx, "live-token")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Ada", sess.Name)
	assert.Equal(t, "s1", sess.ID)

	sess, err = client.GetSession(ctx, "unknown-token")
	require.NoError(t, err)
	assert.Nil(t, sess, "a null body means no session")

	sess, err = client.GetSession(ctx, "revoked-token")
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, err = client.GetSession(ctx, "broken-token")
	assert.Error(t, err)

	assert.NoError(t, client.SignOut(ctx, "live-token"))
}

func TestHTTPClient_SessionCache(t *testing.T) {
	var lookups atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /get-session", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		_, _ = w.Write([]byte(`{"session":{"id":"s1","userId":"u1","expiresAt":"2030-01-01T00:00:00Z"},"user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
	})
	mux.HandleFunc("POST /sign-out", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client()).WithSessionCache(time.Minute)
	ctx := context.Background()

	for range 3 {
		sess, err := client.GetSession(ctx, "live-token")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "Ada", sess.Name)
	}
	assert.Equal(t, int32(1), lookups.Load(), "repeat lookups are served from the cache")

	require.NoError(t, client.SignOut(ctx, "live-token"))
	_, err := client.GetSession(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, int32(2), lookups.Load(), "sign-out evicts the cached session")
}
