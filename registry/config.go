package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config holds registry connection and self-registration settings.
type Config struct {
	// Provider selects the registry backend: "consul" or "static".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Address is the registry base address advertised to callers
	// (e.g. "http://localhost:8500"). Reported verbatim by the tracker.
	Address string `yaml:"address" mapstructure:"address"`

	// ConsulScheme is the URI scheme for Consul ("http" or "https").
	ConsulScheme string `yaml:"consul_scheme" mapstructure:"consul_scheme"`

	// ConsulToken is the Consul ACL token for authentication.
	ConsulToken string `yaml:"consul_token" mapstructure:"consul_token"`

	// ConsulDatacenter is the Consul datacenter name.
	ConsulDatacenter string `yaml:"consul_datacenter" mapstructure:"consul_datacenter"`

	// ServiceName is the name this service registers under and looks up.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// ServiceID is the unique instance ID; generated if empty.
	ServiceID string `yaml:"service_id" mapstructure:"service_id"`

	// ServiceAddress is the address advertised to other services.
	ServiceAddress string `yaml:"service_address" mapstructure:"service_address"`

	// ServicePort is the port advertised to other services.
	ServicePort int `yaml:"service_port" mapstructure:"service_port"`

	// HealthCheckPath is the HTTP path the registry polls (e.g. "/api/health").
	HealthCheckPath string `yaml:"health_check_path" mapstructure:"health_check_path"`

	// HealthCheckInterval controls how often the registry polls health.
	HealthCheckInterval time.Duration `yaml:"health_check_interval" mapstructure:"health_check_interval"`

	// HealthCheckTimeout is the timeout for a single health poll.
	HealthCheckTimeout time.Duration `yaml:"health_check_timeout" mapstructure:"health_check_timeout"`

	// DeregisterAfter removes the registration after being critical this long.
	DeregisterAfter time.Duration `yaml:"deregister_after" mapstructure:"deregister_after"`

	// Tags are metadata tags attached to the registration.
	Tags []string `yaml:"tags" mapstructure:"tags"`

	// Metadata is arbitrary key-value metadata for the registration.
	Metadata map[string]string `yaml:"metadata" mapstructure:"metadata"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "static"
	}
	if c.Address == "" {
		c.Address = "http://localhost:8500"
	}
	if c.ConsulScheme == "" {
		c.ConsulScheme = "http"
	}
	if c.HealthCheckPath == "" {
		c.HealthCheckPath = "/api/health"
	}
	if c.HealthCheckInterval == 0 {
		c.HealthCheckInterval = 10 * time.Second
	}
	if c.HealthCheckTimeout == 0 {
		c.HealthCheckTimeout = 5 * time.Second
	}
	if c.DeregisterAfter == 0 {
		c.DeregisterAfter = 1 * time.Minute
	}
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	switch c.Provider {
	case "consul", "static":
	default:
		return fmt.Errorf("unsupported registry provider %q", c.Provider)
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Provider == "consul" && c.ServicePort <= 0 {
		return fmt.Errorf("service_port must be > 0")
	}
	return nil
}

// Registration builds this process's own registry record from the config.
// A missing ServiceID gets a generated "<name>-<uuid>" one, and a missing
// ServiceAddress falls back to localhost.
func (c *Config) Registration() *Registration {
	id := c.ServiceID
	if id == "" {
		id = fmt.Sprintf("%s-%s", c.ServiceName, uuid.NewString())
	}
	addr := c.ServiceAddress
	if addr == "" {
		addr = "127.0.0.1"
	}
	return &Registration{
		ID:       id,
		Name:     c.ServiceName,
		Address:  addr,
		Port:     c.ServicePort,
		Tags:     c.Tags,
		Metadata: c.Metadata,
	}
}
