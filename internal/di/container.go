package di

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/samber/oops"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/registry"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/admin"
	"github.com/reshetovitsme/photo-relay-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/photo-relay-bot/internal/transport/http"
	"github.com/reshetovitsme/photo-relay-bot/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Account Registry
	do.Provide(injector, func(i do.Injector) (*registry.Registry, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return registry.New(cfg), nil
	})

	// Register Admin Router
	do.Provide(injector, func(i do.Injector) (*admin.Router, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*registry.Registry](i)
		return admin.NewRouter(reg, cfg.AdminChatID), nil
	})

	// Register Relay
	do.Provide(injector, func(i do.Injector) (*telegram.Relay, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*registry.Registry](i)
		router := do.MustInvoke[*admin.Router](i)
		return telegram.NewRelay(cfg, reg, router), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*registry.Registry](i)
		server := httpServer.New(cfg, reg)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown relay if it exists
	if relay, err := do.Invoke[*telegram.Relay](injector); err == nil && relay != nil {
		relay.Stop(ctx)
	}

	return nil
}
