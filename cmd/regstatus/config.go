package main

import (
	"github.com/kbukum/regstatus/config"
	"github.com/kbukum/regstatus/observability"
	"github.com/kbukum/regstatus/registry"
	"github.com/kbukum/regstatus/server"
)

// appConfig is the full configuration for the regstatus service. It embeds
// config.ServiceConfig so the bootstrap Config interface is satisfied via
// promoted methods.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Registry      registry.Config      `yaml:"registry" mapstructure:"registry"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills zero-valued fields across all sections.
func (c *appConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Name == "" {
		c.Name = "regstatus"
	}
	c.Server.ApplyDefaults()
	if c.Registry.ServiceName == "" {
		c.Registry.ServiceName = c.Name
	}
	if c.Registry.ServicePort == 0 {
		c.Registry.ServicePort = c.Server.Port
	}
	c.Registry.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks all sections for consistency.
func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Registry.Validate()
}
