package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/stretchr/testify/assert"
)

// stubSessions resolves a fixed set of tokens.
type stubSessions struct {
	domain.AuthClient
	sessions map[string]*domain.Session
	err      error
}

func (s *stubSessions) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func TestSessionMiddleware(t *testing.T) {
	client := &stubSessions{sessions: map[string]*domain.Session{
		"good": {ID: "s1", Name: "Ada"},
	}}

	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		if sess := SessionFromContext(c); sess != nil {
			return c.String(http.StatusOK, "hello "+sess.Name)
		}
		return c.String(http.StatusOK, "anonymous")
	}, Session(client))

	serve := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no cookie", func(t *testing.T) {
		rec := serve("")
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("live session is placed in the context", func(t *testing.T) {
		rec := serve("good")
		assert.Equal(t, "hello Ada", rec.Body.String())
	})

	t.Run("unknown token clears the cookie", func(t *testing.T) {
		rec := serve("stale")
		assert.Equal(t, "anonymous", rec.Body.String())
		cookies := rec.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, AuthCookieName, cookies[0].Name)
			assert.True(t, cookies[0].MaxAge < 0)
		}
	})

	t.Run("service errors do not block the page", func(t *testing.T) {
		client.err = errors.New("auth service down")
		defer func() { client.err = nil }()

		rec := serve("good")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
		assert.Empty(t, rec.Result().Cookies(), "the cookie is kept when the service is unreachable")
	})
}
