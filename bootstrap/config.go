package bootstrap

import (
	"github.com/kbukum/regstatus/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) automatically
// satisfies this interface via promoted methods.
//
// Example:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Registry registry.Config `yaml:"registry" mapstructure:"registry"`
//	}
//
//	// MyConfig automatically satisfies Config via promoted methods.
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
