package tracker

import (
	"context"
	"sync"

	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry"
)

// ShutdownSequencer runs the graceful deregistration when the process stops.
// The sequence runs at most once; further calls are no-ops. Deregistration
// failure is logged but never propagated, so process exit is never blocked
// by a registry outage.
type ShutdownSequencer struct {
	client registry.Client
	log    *logger.Logger
	once   sync.Once
}

// NewShutdownSequencer creates a sequencer for the given registry client.
func NewShutdownSequencer(client registry.Client, log *logger.Logger) *ShutdownSequencer {
	return &ShutdownSequencer{
		client: client,
		log:    log.WithComponent("shutdown"),
	}
}

// OnShutdown deregisters from the registry, best effort.
func (s *ShutdownSequencer) OnShutdown(ctx context.Context) {
	s.once.Do(func() {
		s.log.Info("service shutting down, deregistering from registry")
		if err := s.client.Shutdown(ctx); err != nil {
			s.log.Error("registry deregistration failed", logger.ErrorFields("shutdown", err))
			return
		}
		s.log.Info("successfully deregistered from registry")
	})
}
