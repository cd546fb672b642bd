package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/domain"
)

const (
	// AuthCookieName holds the session token issued by the authentication service.
	AuthCookieName = "auth_token"
	// SessionContextKey is where Session stores the resolved *domain.Session.
	SessionContextKey = "session"
)

// Session resolves the auth cookie into a session and stores it in the
// context. It never blocks a request: a missing, invalid or unresolvable
// session just means the page renders signed out.
func Session(client domain.AuthClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := client.GetSession(c.Request().Context(), cookie.Value)
			if err != nil {
				FromContext(c.Request().Context()).Warn("Failed to resolve session", "error", err)
				return next(c)
			}
			if sess == nil {
				// The service no longer knows this token; drop the stale cookie.
				ClearAuthCookie(c)
				return next(c)
			}

			c.Set(SessionContextKey, sess)
			ctx := c.Request().Context()
			c.SetRequest(c.Request().WithContext(WithLogger(ctx, FromContext(ctx).With("user_id", sess.UserID))))
			return next(c)
		}
	}
}

// SessionFromContext returns the current session, or nil when signed out.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionContextKey).(*domain.Session)
	return sess
}

// SetAuthCookie stores the session token for 24 hours.
func SetAuthCookie(c echo.Context, token string) {
	c.SetCookie(authCookie(c, token, 86400))
}

// ClearAuthCookie expires the session cookie immediately.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(authCookie(c, "", -1))
}

func authCookie(c echo.Context, token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:   AuthCookieName,
		Value:  token,
		Path:   "/",
		MaxAge: maxAge,
		// HttpOnly keeps the token away from page scripts.
		HttpOnly: true,
		// Secure only when served over TLS so local development still works.
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
