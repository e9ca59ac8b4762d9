// Package bootstrap orchestrates application lifecycle for regstatus services.
//
// It ties together typed configuration, logger initialization, component
// registration, and startup/shutdown hooks so a service entrypoint reduces to
// building its components and calling Run.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(trackerComponent)
//	app.RegisterComponent(serverComponent)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run starts all components in registration order, executes the lifecycle
// hooks, blocks until SIGINT/SIGTERM or context cancellation, and stops
// components in reverse order within the graceful timeout.
package bootstrap
