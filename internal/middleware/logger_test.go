package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/stretchr/testify/assert"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureDefaultLogger(t)

	client := &stubSessions{sessions: map[string]*domain.Session{
		"good": {ID: "s1", UserID: "u-7", Name: "Ada"},
	}}

	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(Logger)
	e.Use(Session(client))
	e.POST("/sign-in", func(c echo.Context) error {
		FromContext(c.Request().Context()).Info("handled")
		return c.NoContent(http.StatusOK)
	})

	t.Run("request fields", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-42")
		req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
		e.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		assert.Contains(t, out, "request_id=req-42")
		assert.Contains(t, out, "method=POST")
		assert.Contains(t, out, "path=/sign-in")
		assert.Contains(t, out, "ip=203.0.113.9")
		assert.NotContains(t, out, "user_id=")
	})

	t.Run("signed-in requests carry the user id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
		e.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), "user_id=u-7")
	})
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, custom, FromContext(WithLogger(context.Background(), custom)))
}
