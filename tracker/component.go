package tracker

import (
	"context"

	"github.com/kbukum/regstatus/component"
	"github.com/kbukum/regstatus/registry"
)

const componentName = "tracker"

// Component wraps a Tracker for lifecycle management: self-registration at
// startup, health classification while running, and the shutdown sequence on
// stop.
type Component struct {
	tracker   *Tracker
	sequencer *ShutdownSequencer
	registrar registry.Registrar
	reg       *registry.Registration
}

// NewComponent creates a tracker component. registrar and reg may be nil when
// the backend does not support self-registration.
func NewComponent(t *Tracker, seq *ShutdownSequencer, registrar registry.Registrar, reg *registry.Registration) *Component {
	return &Component{
		tracker:   t,
		sequencer: seq,
		registrar: registrar,
		reg:       reg,
	}
}

// Tracker returns the wrapped tracker.
func (c *Component) Tracker() *Tracker { return c.tracker }

// Sequencer returns the shutdown sequencer.
func (c *Component) Sequencer() *ShutdownSequencer { return c.sequencer }

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start registers this process with the registry when the backend supports it.
func (c *Component) Start(ctx context.Context) error {
	if c.registrar == nil || c.reg == nil {
		return nil
	}
	return c.registrar.Register(ctx, c.reg)
}

// Stop runs the one-shot deregistration sequence. It never returns an error:
// shutdown must always complete from the host's point of view.
func (c *Component) Stop(ctx context.Context) error {
	c.sequencer.OnShutdown(ctx)
	return nil
}

// Health maps the tracker's status classification onto component health.
func (c *Component) Health(ctx context.Context) component.Health {
	switch c.tracker.Status(ctx) {
	case StatusConnected:
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	case StatusDisconnected:
		return component.Health{
			Name:    componentName,
			Status:  component.StatusDegraded,
			Message: "not registered with registry",
		}
	default:
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "registry unreachable",
		}
	}
}

// Compile-time check.
var _ component.Component = (*Component)(nil)
