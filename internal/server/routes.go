package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/handlers"
	"github.com/nfrund/gobyauth/internal/middleware"
	"github.com/nfrund/gobyauth/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	auth := s.deps.AuthHandler
	// Credential posts get 1 request per second per IP with a burst of 10.
	rateLimiter := middleware.RateLimiter(1, 10)

	// Serve the embedded files from the "web/static" directory.
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", handlers.HomeGet)
	s.E.GET("/health", handlers.HealthGet)

	s.E.GET("/sign-up", auth.SignUpGet)
	s.E.POST("/sign-up", auth.SignUpPost, rateLimiter)

	s.E.GET("/sign-in", auth.SignInGet)
	s.E.POST("/sign-in", auth.SignInPost, rateLimiter)
	s.E.POST("/sign-in/social/:provider", auth.SocialSignIn, rateLimiter)

	s.E.POST("/sign-out", auth.SignOut)
}

// Routes lists the registered routes as "METHOD path", for the CLI.
func Routes(e *echo.Echo) []string {
	var out []string
	for _, r := range e.Routes() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}
