package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/regstatus/bootstrap"
	"github.com/kbukum/regstatus/config"
	"github.com/kbukum/regstatus/observability"
	"github.com/kbukum/regstatus/registry"
	"github.com/kbukum/regstatus/registry/consul"
	"github.com/kbukum/regstatus/registry/static"
	"github.com/kbukum/regstatus/server"
	"github.com/kbukum/regstatus/tracker"
	"github.com/kbukum/regstatus/version"
)

const serviceName = "regstatus"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "regstatus: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(serviceName, &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}

	providers, err := observability.Init(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	if providers != nil {
		app.OnStop(func(ctx context.Context) error {
			return providers.Shutdown(ctx)
		})
	}

	client, registrar, err := buildRegistryClient(&cfg, app)
	if err != nil {
		return fmt.Errorf("registry client: %w", err)
	}

	trk := tracker.New(client, cfg.Registry.ServiceName, cfg.Registry.Address, app.Logger)
	seq := tracker.NewShutdownSequencer(client, app.Logger)
	if err := app.RegisterComponent(tracker.NewComponent(trk, seq, registrar, cfg.Registry.Registration())); err != nil {
		return fmt.Errorf("register tracker component: %w", err)
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)
	srv.RegisterAPIRoutes(trk, cfg.Name)
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return fmt.Errorf("register server component: %w", err)
	}

	app.OnReady(func(ctx context.Context) error {
		app.Logger.Info("Registry status on startup", map[string]interface{}{
			"status":   string(trk.Status(ctx)),
			"registry": trk.RegistryAddress(),
			"service":  trk.ServiceName(),
		})
		return nil
	})

	// Deregister while transports are still up; the sequencer runs at most
	// once, so the tracker component stopping afterwards is a no-op.
	app.OnStop(func(ctx context.Context) error {
		seq.OnShutdown(ctx)
		return nil
	})

	return app.Run(ctx)
}

// buildRegistryClient selects the registry backend from config. The second
// return is non-nil when the backend supports self-registration.
func buildRegistryClient(cfg *appConfig, app *bootstrap.App[*appConfig]) (registry.Client, registry.Registrar, error) {
	switch cfg.Registry.Provider {
	case "consul":
		c, err := consul.New(cfg.Registry, app.Logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case "static":
		c := static.New()
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unsupported registry provider %q", cfg.Registry.Provider)
	}
}
