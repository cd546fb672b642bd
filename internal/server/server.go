package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/gobyauth/internal/app"
	"github.com/nfrund/gobyauth/internal/authclient"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/events"
	appmiddleware "github.com/nfrund/gobyauth/internal/middleware"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	deps     app.Dependencies
	injector *do.RootScope
	// cancel stops the audit subscriptions.
	cancel context.CancelFunc
}

// New creates a new Server instance. client may be nil, in which case the
// client named by AUTH_CLIENT is built.
func New(cfg config.Provider, client authclient.Client) (*Server, error) {
	injector := app.NewInjector(cfg, client)
	deps, err := app.Resolve(injector)
	if err != nil {
		injector.Shutdown()
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := events.StartAudit(ctx, deps.Bus, slog.Default()); err != nil {
		cancel()
		injector.Shutdown()
		return nil, fmt.Errorf("failed to start audit subscriber: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = deps.Renderer
	e.Validator = deps.AuthHandler.Validator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	// Configure and use session middleware for flash messages.
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.Session(deps.Client))

	return &Server{
		E:        e,
		Cfg:      cfg,
		deps:     deps,
		injector: injector,
		cancel:   cancel,
	}, nil
}

// Client is a getter for the server's authentication client, useful for testing.
func (s *Server) Client() authclient.Client {
	return s.deps.Client
}

// Close releases the auth client, the event bus and the injector.
func (s *Server) Close() {
	s.cancel()
	if err := s.deps.Bus.Close(); err != nil {
		slog.Error("Failed to close event bus", "error", err)
	}
	if err := s.deps.Client.Close(); err != nil {
		slog.Error("Failed to close auth client", "error", err)
	}
	s.injector.Shutdown()
}
