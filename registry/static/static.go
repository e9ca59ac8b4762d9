// Package static provides an in-memory registry.Client for local development
// and testing. Records live in process memory; there is no transport, so
// calls never fail.
package static

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/regstatus/registry"
)

// Client implements registry.Client over an in-memory record store.
type Client struct {
	mu        sync.RWMutex
	apps      map[string][]registry.Instance // keyed by application name
	self      *registry.Instance
	selfOwner string // application name holding the self record
}

// New creates an empty in-memory client.
func New() *Client {
	return &Client{apps: make(map[string][]registry.Instance)}
}

// Register adds this process's own record to the store and remembers it as
// the self record, mirroring what a real backend does at startup.
func (c *Client) Register(_ context.Context, reg *registry.Registration) error {
	inst := registry.Instance{
		ID:       reg.ID,
		AppName:  reg.Name,
		Address:  reg.Address,
		Port:     reg.Port,
		Metadata: reg.Metadata,
		LastSeen: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apps[reg.Name] = append(c.apps[reg.Name], inst)
	c.self = &inst
	c.selfOwner = reg.Name
	return nil
}

// Add seeds an instance record for the named application.
func (c *Client) Add(appName string, inst registry.Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst.AppName = appName
	c.apps[appName] = append(c.apps[appName], inst)
}

// Remove deletes all records for the named application.
func (c *Client) Remove(appName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.apps, appName)
}

// Lookup returns the application record, or (nil, nil) when absent.
func (c *Client) Lookup(_ context.Context, serviceName string) (*registry.Application, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	instances, ok := c.apps[serviceName]
	if !ok || len(instances) == 0 {
		return nil, nil
	}

	// Copies all the way down: returned records must not alias the store.
	out := make([]registry.Instance, len(instances))
	for i, inst := range instances {
		inst.Metadata = cloneMetadata(inst.Metadata)
		out[i] = inst
	}
	return &registry.Application{Name: serviceName, Instances: out}, nil
}

// Self returns this process's own record, or (nil, nil) before Register.
func (c *Client) Self(_ context.Context) (*registry.Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.self == nil {
		return nil, nil
	}
	cp := *c.self
	cp.Metadata = cloneMetadata(cp.Metadata)
	return &cp, nil
}

func cloneMetadata(meta map[string]string) map[string]string {
	if meta == nil {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// Shutdown removes this process's own record.
func (c *Client) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.self == nil {
		return nil
	}
	list := c.apps[c.selfOwner]
	for i, inst := range list {
		if inst.ID == c.self.ID {
			c.apps[c.selfOwner] = append(list[:i], list[i+1:]...)
			break
		}
	}
	c.self = nil
	return nil
}

// Compile-time check.
var _ registry.Client = (*Client)(nil)
