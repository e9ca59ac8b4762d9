package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/regstatus/component"
	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry"
)

// fakeRegistrar implements registry.Registrar for testing.
type fakeRegistrar struct {
	registered  []*registry.Registration
	registerErr error
}

func (f *fakeRegistrar) Register(ctx context.Context, reg *registry.Registration) error {
	f.registered = append(f.registered, reg)
	return f.registerErr
}

func newTestComponent(client *fakeClient, registrar registry.Registrar, reg *registry.Registration) *Component {
	log := logger.NewDefault("test")
	trk := New(client, "orders", "http://localhost:8500", log)
	return NewComponent(trk, NewShutdownSequencer(client, log), registrar, reg)
}

func TestComponentName(t *testing.T) {
	c := newTestComponent(&fakeClient{}, nil, nil)
	if c.Name() != "tracker" {
		t.Errorf("Name = %q", c.Name())
	}
}

func TestComponentStartRegisters(t *testing.T) {
	registrar := &fakeRegistrar{}
	reg := &registry.Registration{ID: "orders-1", Name: "orders"}
	c := newTestComponent(&fakeClient{}, registrar, reg)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(registrar.registered) != 1 || registrar.registered[0].ID != "orders-1" {
		t.Errorf("unexpected registrations: %+v", registrar.registered)
	}
}

func TestComponentStartWithoutRegistrar(t *testing.T) {
	c := newTestComponent(&fakeClient{}, nil, nil)
	if err := c.Start(context.Background()); err != nil {
		t.Errorf("Start without registrar must succeed, got %v", err)
	}
}

func TestComponentStartPropagatesRegisterError(t *testing.T) {
	registrar := &fakeRegistrar{registerErr: errors.New("connection refused")}
	c := newTestComponent(&fakeClient{}, registrar, &registry.Registration{Name: "orders"})

	if err := c.Start(context.Background()); err == nil {
		t.Error("expected registration error")
	}
}

func TestComponentStopNeverFails(t *testing.T) {
	client := &fakeClient{shutdownErr: errors.New("connection refused")}
	c := newTestComponent(client, nil, nil)

	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop must not fail, got %v", err)
	}
	if got := client.shutdownCount(); got != 1 {
		t.Errorf("expected 1 deregistration, got %d", got)
	}
}

func TestComponentHealth(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeClient
		want   component.HealthStatus
	}{
		{"registered", &fakeClient{app: registeredApp("orders")}, component.StatusHealthy},
		{"absent", &fakeClient{}, component.StatusDegraded},
		{"unreachable", &fakeClient{lookupErr: errors.New("timeout")}, component.StatusUnhealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestComponent(tc.client, nil, nil)
			h := c.Health(context.Background())
			if h.Status != tc.want {
				t.Errorf("status = %s, want %s", h.Status, tc.want)
			}
		})
	}
}
