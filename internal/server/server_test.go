package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var logs bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))

	e := echo.New()
	setupErrorHandling(e)
	e.GET("/unhandled", func(c echo.Context) error {
		return errors.New("auth service returned garbage")
	})
	e.Match([]string{http.MethodGet, http.MethodHead}, "/not-found", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	})
	e.GET("/bad-gateway", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(errors.New("upstream closed"))
	})

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
		wantLogs []string
		noLogs   bool
	}{
		{
			name:     "unhandled errors are logged with a stack trace and hidden",
			method:   http.MethodGet,
			path:     "/unhandled",
			wantCode: http.StatusInternalServerError,
			wantBody: "Internal Server Error",
			wantLogs: []string{
				"Internal Server Error (Unhandled)",
				`error="auth service returned garbage"`,
				"stack_trace=",
				"runtime/debug",
				"internal/server/server_test.go",
			},
		},
		{
			name:     "http errors keep their message",
			method:   http.MethodGet,
			path:     "/not-found",
			wantCode: http.StatusNotFound,
			wantBody: "unknown provider",
			noLogs:   true,
		},
		{
			name:     "5xx http errors are logged",
			method:   http.MethodGet,
			path:     "/bad-gateway",
			wantCode: http.StatusBadGateway,
			wantBody: "Bad Gateway",
			wantLogs: []string{"Internal Server Error", "upstream closed"},
		},
		{
			name:     "HEAD gets no body",
			method:   http.MethodHead,
			path:     "/not-found",
			wantCode: http.StatusNotFound,
			noLogs:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "garbage", "internal errors never reach the client")
			for _, want := range tt.wantLogs {
				assert.Contains(t, logs.String(), want)
			}
			if tt.noLogs {
				assert.Empty(t, logs.String())
			}
		})
	}
}
