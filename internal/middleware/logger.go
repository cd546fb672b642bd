package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type loggerKey struct{}

// Logger puts a per-request slog logger on the request context, tagged with
// the request id, method, route and client IP. Register it after
// middleware.RequestID so the id is already on the response.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := slog.Default().With(
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"method", c.Request().Method,
			"path", c.Path(),
			"ip", c.RealIP(),
		)
		c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), logger)))
		return next(c)
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger, or the default logger outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
