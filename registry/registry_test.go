package registry

import (
	"errors"
	"strings"
	"testing"
)

func TestApplicationIsEmpty(t *testing.T) {
	var nilApp *Application
	if !nilApp.IsEmpty() {
		t.Error("nil application must be empty")
	}
	if !(&Application{Name: "orders"}).IsEmpty() {
		t.Error("application without instances must be empty")
	}
	app := &Application{Name: "orders", Instances: []Instance{{ID: "orders-1"}}}
	if app.IsEmpty() {
		t.Error("application with instances must not be empty")
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport("lookup", cause)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatal("expected *TransportError")
	}
	if te.Op != "lookup" {
		t.Errorf("Op = %q", te.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("cause must unwrap")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message does not carry the cause: %q", err.Error())
	}
}

func TestTransportNil(t *testing.T) {
	if err := Transport("lookup", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Provider != "static" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Address != "http://localhost:8500" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.HealthCheckPath != "/api/health" {
		t.Errorf("HealthCheckPath = %q", cfg.HealthCheckPath)
	}
	if cfg.HealthCheckInterval == 0 || cfg.HealthCheckTimeout == 0 || cfg.DeregisterAfter == 0 {
		t.Error("health check timings must default to non-zero values")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid static", func(c *Config) {}, false},
		{"valid consul", func(c *Config) { c.Provider = "consul"; c.ServicePort = 8080 }, false},
		{"bad provider", func(c *Config) { c.Provider = "zookeeper" }, true},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, true},
		{"consul without port", func(c *Config) { c.Provider = "consul"; c.ServicePort = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{ServiceName: "orders"}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigRegistration(t *testing.T) {
	cfg := Config{
		ServiceName:    "orders",
		ServiceID:      "orders-1",
		ServiceAddress: "10.0.0.5",
		ServicePort:    8080,
		Tags:           []string{"api"},
		Metadata:       map[string]string{"zone": "a"},
	}

	reg := cfg.Registration()
	if reg.ID != "orders-1" || reg.Name != "orders" || reg.Address != "10.0.0.5" || reg.Port != 8080 {
		t.Errorf("unexpected registration: %+v", reg)
	}
	if len(reg.Tags) != 1 || reg.Metadata["zone"] != "a" {
		t.Errorf("tags/metadata not carried: %+v", reg)
	}
}

func TestConfigRegistrationGeneratesID(t *testing.T) {
	cfg := Config{ServiceName: "orders"}

	reg := cfg.Registration()
	if !strings.HasPrefix(reg.ID, "orders-") || reg.ID == "orders-" {
		t.Errorf("generated ID = %q", reg.ID)
	}
	if reg.Address != "127.0.0.1" {
		t.Errorf("default address = %q", reg.Address)
	}

	if other := cfg.Registration(); other.ID == reg.ID {
		t.Error("generated IDs must be unique")
	}
}
