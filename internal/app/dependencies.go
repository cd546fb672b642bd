package app

import (
	"context"

	"github.com/nfrund/gobyauth/internal/authclient"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/events"
	"github.com/nfrund/gobyauth/internal/handlers"
	"github.com/nfrund/gobyauth/internal/pubsub"
	"github.com/nfrund/gobyauth/internal/rendering"
	"github.com/samber/do/v2"
)

// Dependencies holds the core services the HTTP server is assembled from.
type Dependencies struct {
	Client      authclient.Client
	Bus         *pubsub.WatermillBridge
	Recorder    *events.Recorder
	Renderer    *rendering.UniversalRenderer
	AuthHandler *handlers.AuthHandler
}

// NewInjector registers every service provider. Services are built lazily
// on first Invoke. A non-nil client replaces the one chosen by AUTH_CLIENT.
func NewInjector(cfg config.Provider, client authclient.Client) *do.RootScope {
	injector := do.New()

	do.ProvideValue[config.Provider](injector, cfg)

	if client != nil {
		do.ProvideValue[authclient.Client](injector, client)
	} else {
		do.Provide(injector, func(i do.Injector) (authclient.Client, error) {
			return authclient.NewClient(do.MustInvoke[config.Provider](i))
		})
	}

	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return pubsub.NewTracedWatermillBridge(context.Background(), pubsub.TracingConfig{
			Enabled:     cfg.GetTracingEnabled(),
			ServiceName: cfg.GetTracingServiceName(),
			ZipkinURL:   cfg.GetZipkinURL(),
		})
	})
	do.Provide(injector, func(i do.Injector) (*events.Recorder, error) {
		return events.NewRecorder(do.MustInvoke[*pubsub.WatermillBridge](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		client, err := do.Invoke[authclient.Client](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewAuthHandler(client, do.MustInvoke[*events.Recorder](i)), nil
	})

	return injector
}

// Resolve builds the dependency graph and returns the wired services.
func Resolve(injector do.Injector) (Dependencies, error) {
	handler, err := do.Invoke[*handlers.AuthHandler](injector)
	if err != nil {
		return Dependencies{}, err
	}
	return Dependencies{
		Client:      do.MustInvoke[authclient.Client](injector),
		Bus:         do.MustInvoke[*pubsub.WatermillBridge](injector),
		Recorder:    do.MustInvoke[*events.Recorder](injector),
		Renderer:    do.MustInvoke[*rendering.UniversalRenderer](injector),
		AuthHandler: handler,
	}, nil
}
