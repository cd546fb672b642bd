package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unhandled errors
// with a stack trace and never leaks their text to the client.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
			if code >= http.StatusInternalServerError {
				logger.Error("Internal Server Error", "error", err, "path", c.Path())
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"path", c.Path(),
				"stack_trace", string(debug.Stack()),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.String(code, message)
	}
}
