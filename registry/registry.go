package registry

import (
	"context"
	"time"
)

// Instance holds the registry's metadata for one concrete running process.
type Instance struct {
	ID             string
	AppName        string
	Address        string
	Port           int
	HomePageURL    string
	HealthCheckURL string
	StatusPageURL  string
	Metadata       map[string]string
	LastSeen       time.Time
}

// Application is a named group of registered instances.
type Application struct {
	Name      string
	Instances []Instance
}

// IsEmpty reports whether the application has no registered instances.
func (a *Application) IsEmpty() bool {
	return a == nil || len(a.Instances) == 0
}

// Registration describes this process's own entry in the registry.
type Registration struct {
	ID       string
	Name     string
	Address  string
	Port     int
	Tags     []string
	Metadata map[string]string
}

// Registrar is implemented by backends that support self-registration.
type Registrar interface {
	// Register adds this process's own record to the registry.
	Register(ctx context.Context, reg *Registration) error
}

// Client is the capability consumed by the status tracker. Backends implement
// it against a concrete registry.
//
// Lookup and Self return (nil, nil) when the registry answered but holds no
// record. Any non-nil error is a transport failure and unwraps to
// *TransportError.
type Client interface {
	// Lookup returns the application record for the named service.
	Lookup(ctx context.Context, serviceName string) (*Application, error)

	// Self returns the instance record for this process's own registration.
	Self(ctx context.Context) (*Instance, error)

	// Shutdown deregisters this process and releases client resources.
	Shutdown(ctx context.Context) error
}
