package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/regstatus/component"
	"github.com/kbukum/regstatus/config"
)

type testConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func validConfig() *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: "orders", Version: "1.0.0"}}
}

// stubComponent implements component.Component for lifecycle tests.
type stubComponent struct {
	name    string
	started bool
	stopped bool
	status  component.HealthStatus
}

func (s *stubComponent) Name() string { return s.name }
func (s *stubComponent) Start(ctx context.Context) error {
	s.started = true
	return nil
}
func (s *stubComponent) Stop(ctx context.Context) error {
	s.stopped = true
	return nil
}
func (s *stubComponent) Health(ctx context.Context) component.Health {
	status := s.status
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: s.name, Status: status}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(validConfig())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "orders" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity: %s %s", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil {
		t.Error("expected registry and logger to be initialized")
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := &testConfig{} // missing name
	if _, err := NewApp(cfg); err == nil {
		t.Error("expected validation error")
	}
}

func TestNewAppWithGracefulTimeout(t *testing.T) {
	app, err := NewApp(validConfig(), WithGracefulTimeout(3*time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}

func TestStartupAndStop(t *testing.T) {
	app, _ := NewApp(validConfig())
	c := &stubComponent{name: "tracker"}
	app.RegisterComponent(c)

	var events []string
	app.OnStart(func(ctx context.Context) error {
		events = append(events, "start")
		return nil
	})
	app.OnReady(func(ctx context.Context) error {
		events = append(events, "ready")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		events = append(events, "stop")
		return nil
	})

	if err := app.startup(context.Background()); err != nil {
		t.Fatalf("startup failed: %v", err)
	}
	if !c.started {
		t.Error("component not started")
	}
	if err := app.stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !c.stopped {
		t.Error("component not stopped")
	}

	want := []string{"start", "ready", "stop"}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events = %v, want %v", events, want)
			break
		}
	}
}

func TestStartupFailsOnHookError(t *testing.T) {
	app, _ := NewApp(validConfig())
	app.OnStart(func(ctx context.Context) error {
		return errors.New("boom")
	})

	if err := app.startup(context.Background()); err == nil {
		t.Error("expected startup error")
	}
}

func TestReadyCheck(t *testing.T) {
	app, _ := NewApp(validConfig())
	app.RegisterComponent(&stubComponent{name: "healthy"})

	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	app.RegisterComponent(&stubComponent{name: "degraded", status: component.StatusDegraded})
	if err := app.ReadyCheck(context.Background()); err == nil {
		t.Error("expected error for degraded component")
	}
}

// A degraded component must not abort startup, only warn.
func TestStartupToleratesDegraded(t *testing.T) {
	app, _ := NewApp(validConfig())
	app.RegisterComponent(&stubComponent{name: "tracker", status: component.StatusDegraded})

	if err := app.startup(context.Background()); err != nil {
		t.Errorf("startup must tolerate a degraded component, got %v", err)
	}
}

func TestWaitForSignalContextCancel(t *testing.T) {
	app, _ := NewApp(validConfig())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		app.WaitForSignal(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForSignal did not return on context cancellation")
	}
}
