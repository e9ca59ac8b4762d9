package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/regstatus/component"
	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry/static"
	"github.com/kbukum/regstatus/tracker"
)

func newTestServer() *Server {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Port = 0
	return New(cfg, logger.NewDefault("test"))
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative port")
	}
}

func TestRegisterAPIRoutes(t *testing.T) {
	s := newTestServer()
	trk := tracker.New(static.New(), "orders", "http://localhost:8500", logger.NewDefault("test"))
	s.RegisterAPIRoutes(trk, "orders")

	paths := []string{"/api/health", "/api/info", "/api/discovery/status", "/api/metadata"}
	for _, p := range paths {
		w := httptest.NewRecorder()
		s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", p, w.Code)
		}
	}
}

func TestRegisterDefaultEndpoints(t *testing.T) {
	s := newTestServer()
	s.RegisterDefaultEndpoints("orders", func(ctx context.Context) []component.Health {
		return nil
	})

	for _, p := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", p, w.Code)
		}
	}
}

func TestNoRoute(t *testing.T) {
	s := newTestServer()
	s.RegisterDefaultEndpoints("orders", nil)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStartStop(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
