// Package consul implements registry.Client using HashiCorp Consul.
package consul

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/consul/api"

	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry"
)

// Client implements registry.Client against a Consul agent.
type Client struct {
	client *api.Client
	cfg    registry.Config
	log    *logger.Logger

	// mu guards reg: Self runs concurrently with Shutdown while the HTTP
	// surface drains during deregistration.
	mu  sync.Mutex
	reg *registry.Registration // set by Register, nil before
}

// registration returns the current self-registration record, or nil.
func (c *Client) registration() *registry.Registration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg
}

func (c *Client) setRegistration(reg *registry.Registration) {
	c.mu.Lock()
	c.reg = reg
	c.mu.Unlock()
}

// New creates a Client from the given Config.
func New(cfg registry.Config, log *logger.Logger) (*Client, error) {
	apiCfg := api.DefaultConfig()
	addr, scheme := splitAddress(cfg.Address, cfg.ConsulScheme)
	apiCfg.Address = addr
	apiCfg.Scheme = scheme
	apiCfg.Token = cfg.ConsulToken
	if cfg.ConsulDatacenter != "" {
		apiCfg.Datacenter = cfg.ConsulDatacenter
	}

	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("consul client: %w", err)
	}

	return &Client{
		client: client,
		cfg:    cfg,
		log:    log.WithComponent("consul"),
	}, nil
}

// Register registers this process with the Consul agent, including an HTTP
// health check so Consul can reap dead instances.
func (c *Client) Register(ctx context.Context, reg *registry.Registration) error {
	asr := &api.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: reg.Address,
		Port:    reg.Port,
		Tags:    reg.Tags,
		Meta:    reg.Metadata,
	}

	if c.cfg.HealthCheckPath != "" {
		scheme := c.cfg.ConsulScheme
		if scheme == "" {
			scheme = "http"
		}
		asr.Check = &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("%s://%s:%d%s", scheme, reg.Address, reg.Port, c.cfg.HealthCheckPath),
			Interval:                       c.cfg.HealthCheckInterval.String(),
			Timeout:                        c.cfg.HealthCheckTimeout.String(),
			DeregisterCriticalServiceAfter: c.cfg.DeregisterAfter.String(),
		}
	}

	if err := c.client.Agent().ServiceRegister(asr); err != nil {
		c.log.Error("failed to register service", map[string]interface{}{
			"service_id": reg.ID, "error": err.Error(),
		})
		return registry.Transport("register", err)
	}

	c.setRegistration(reg)
	c.log.Info("service registered", map[string]interface{}{
		"service_id": reg.ID, "address": reg.Address, "port": reg.Port,
	})
	return nil
}

// Lookup queries Consul for the named service. Returns (nil, nil) when the
// registry is reachable but holds no instances.
func (c *Client) Lookup(ctx context.Context, serviceName string) (*registry.Application, error) {
	opts := (&api.QueryOptions{}).WithContext(ctx)
	entries, _, err := c.client.Health().Service(serviceName, "", false, opts)
	if err != nil {
		return nil, registry.Transport("lookup", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	now := time.Now()
	instances := make([]registry.Instance, 0, len(entries))
	for _, e := range entries {
		instances = append(instances, c.entryToInstance(e, now))
	}
	return &registry.Application{Name: serviceName, Instances: instances}, nil
}

// Self returns this process's own registration as seen by the local agent.
// Returns (nil, nil) before Register or after the agent dropped the record.
func (c *Client) Self(ctx context.Context) (*registry.Instance, error) {
	reg := c.registration()
	if reg == nil {
		return nil, nil
	}

	services, err := c.client.Agent().ServicesWithFilterOpts("", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, registry.Transport("self", err)
	}

	svc, ok := services[reg.ID]
	if !ok {
		return nil, nil
	}

	inst := registry.Instance{
		ID:       svc.ID,
		AppName:  svc.Service,
		Address:  svc.Address,
		Port:     svc.Port,
		Metadata: svc.Meta,
		LastSeen: time.Now(),
	}
	fillURLs(&inst, c.cfg.HealthCheckPath)
	return &inst, nil
}

// Shutdown deregisters this process from the Consul agent.
func (c *Client) Shutdown(ctx context.Context) error {
	reg := c.registration()
	if reg == nil {
		return nil
	}
	if err := c.client.Agent().ServiceDeregister(reg.ID); err != nil {
		return registry.Transport("shutdown", err)
	}
	c.log.Info("service deregistered", map[string]interface{}{"service_id": reg.ID})
	c.setRegistration(nil)
	return nil
}

func (c *Client) entryToInstance(e *api.ServiceEntry, now time.Time) registry.Instance {
	inst := registry.Instance{
		ID:       e.Service.ID,
		AppName:  e.Service.Service,
		Address:  e.Service.Address,
		Port:     e.Service.Port,
		Metadata: e.Service.Meta,
		LastSeen: now,
	}
	if inst.Address == "" {
		inst.Address = e.Node.Address
	}
	fillURLs(&inst, c.cfg.HealthCheckPath)
	return inst
}

// fillURLs derives the instance URLs, preferring explicit metadata keys over
// addresses computed from the registration.
func fillURLs(inst *registry.Instance, healthPath string) {
	base := fmt.Sprintf("http://%s:%d", inst.Address, inst.Port)
	if healthPath == "" {
		healthPath = "/api/health"
	}

	inst.HomePageURL = metaOr(inst.Metadata, "home_page_url", base+"/")
	inst.HealthCheckURL = metaOr(inst.Metadata, "health_check_url", base+healthPath)
	inst.StatusPageURL = metaOr(inst.Metadata, "status_page_url", base+"/api/info")
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}

// splitAddress separates an optional scheme prefix from a registry address so
// it can feed the Consul API config, which wants them apart.
func splitAddress(address, defaultScheme string) (addr, scheme string) {
	scheme = defaultScheme
	if scheme == "" {
		scheme = "http"
	}
	if !strings.Contains(address, "://") {
		return address, scheme
	}
	u, err := url.Parse(address)
	if err != nil {
		return address, scheme
	}
	if u.Scheme != "" {
		scheme = u.Scheme
	}
	return u.Host, scheme
}

// Compile-time check.
var _ registry.Client = (*Client)(nil)
