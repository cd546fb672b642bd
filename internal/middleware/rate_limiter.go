package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const tooManyAttempts = "Too many attempts. Please wait a moment and try again."

// RateLimiter caps credential submissions per client IP: burst at once,
// refilled at perSecond.
func RateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(perSecond),
		Burst: burst,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store:               store,
		IdentifierExtractor: clientIP,
		DenyHandler:         denyAttempt,
	})
}

func clientIP(c echo.Context) (string, error) {
	return c.RealIP(), nil
}

func denyAttempt(c echo.Context, ip string, _ error) error {
	FromContext(c.Request().Context()).Warn("Rate limit exceeded", "ip", ip, "route", c.Path())
	return c.String(http.StatusTooManyRequests, tooManyAttempts)
}
