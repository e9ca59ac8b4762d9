package tracker

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/registry"
)

// Status classifies registry connectivity as seen by one query.
type Status string

const (
	StatusConnected    Status = "CONNECTED"
	StatusDisconnected Status = "DISCONNECTED"
	StatusError        Status = "ERROR"
)

// TimeLayout is the fixed representation for tracker timestamps.
const TimeLayout = "2006-01-02T15:04:05"

// Sentinel values returned by the instance accessors: "unknown" when the
// registry holds no record, "error" when the call itself failed.
const (
	ValueUnknown = "unknown"
	ValueError   = "error"
)

const tracerName = "github.com/kbukum/regstatus/tracker"

// Tracker tracks whether this instance is registered with the registry.
// It is immutable after construction except for the heartbeat timestamp,
// which is updated atomically; concurrent queries are safe.
type Tracker struct {
	client       registry.Client
	serviceName  string
	registryAddr string
	log          *logger.Logger

	registrationTime time.Time
	lastHeartbeat    atomic.Int64 // unix nanos, advances only forward

	tracer  trace.Tracer
	metrics *metrics
}

// New creates a Tracker for the named service. The registration time is
// recorded once, here.
func New(client registry.Client, serviceName, registryAddr string, log *logger.Logger) *Tracker {
	now := time.Now()
	t := &Tracker{
		client:           client,
		serviceName:      serviceName,
		registryAddr:     registryAddr,
		log:              log.WithComponent("tracker"),
		registrationTime: now,
		tracer:           otel.Tracer(tracerName),
		metrics:          newMetrics(otel.Meter(tracerName)),
	}
	t.lastHeartbeat.Store(now.UnixNano())
	return t
}

// outcome is the classification of a single registry lookup.
type outcome int

const (
	observedRegistered outcome = iota
	observedAbsent
	observedFailure
)

// observe performs one synchronous lookup and classifies it. A registered
// observation advances the heartbeat.
func (t *Tracker) observe(ctx context.Context) outcome {
	ctx, span := t.tracer.Start(ctx, "registry.lookup",
		trace.WithAttributes(attribute.String("service.name", t.serviceName)))
	defer span.End()

	start := time.Now()
	app, err := t.client.Lookup(ctx, t.serviceName)
	t.metrics.recordLookup(ctx, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		t.log.Error("registry lookup failed", logger.ErrorFields("lookup", err))
		return observedFailure
	}

	if app.IsEmpty() {
		span.SetAttributes(attribute.Bool("registered", false))
		t.log.Warn("service not registered with registry", map[string]interface{}{
			"service_name": t.serviceName,
		})
		return observedAbsent
	}

	span.SetAttributes(attribute.Bool("registered", true))
	t.advanceHeartbeat(time.Now())
	return observedRegistered
}

// advanceHeartbeat moves the heartbeat forward, never backward, even when
// queries race.
func (t *Tracker) advanceHeartbeat(now time.Time) {
	ts := now.UnixNano()
	for {
		cur := t.lastHeartbeat.Load()
		if ts <= cur {
			return
		}
		if t.lastHeartbeat.CompareAndSwap(cur, ts) {
			return
		}
	}
}

// IsRegistered reports whether the registry currently holds at least one
// instance for this service. Transport failures are swallowed and reported
// as false: a registry outage must never fault the caller.
func (t *Tracker) IsRegistered(ctx context.Context) bool {
	return t.observe(ctx) == observedRegistered
}

// HasConnectionError reports whether the registry could be reached at all,
// distinguishing "queried and got nothing" from "could not query".
func (t *Tracker) HasConnectionError(ctx context.Context) bool {
	return t.observe(ctx) == observedFailure
}

// Status classifies the current registration state in one lookup.
func (t *Tracker) Status(ctx context.Context) Status {
	switch t.observe(ctx) {
	case observedRegistered:
		return StatusConnected
	case observedAbsent:
		return StatusDisconnected
	default:
		return StatusError
	}
}

// selfField reads one field of this process's own instance record.
// Absent record and transport failure degrade to sentinels independently of
// any other accessor.
func (t *Tracker) selfField(ctx context.Context, field string, pick func(*registry.Instance) string) string {
	inst, err := t.client.Self(ctx)
	if err != nil {
		t.log.Error("instance record read failed", map[string]interface{}{
			"field": field,
			"error": err.Error(),
		})
		return ValueError
	}
	if inst == nil {
		return ValueUnknown
	}
	return pick(inst)
}

// InstanceID returns this instance's registry ID.
func (t *Tracker) InstanceID(ctx context.Context) string {
	return t.selfField(ctx, "instance_id", func(i *registry.Instance) string { return i.ID })
}

// HomePageURL returns this instance's advertised home page URL.
func (t *Tracker) HomePageURL(ctx context.Context) string {
	return t.selfField(ctx, "home_page_url", func(i *registry.Instance) string { return i.HomePageURL })
}

// HealthCheckURL returns this instance's advertised health check URL.
func (t *Tracker) HealthCheckURL(ctx context.Context) string {
	return t.selfField(ctx, "health_check_url", func(i *registry.Instance) string { return i.HealthCheckURL })
}

// StatusPageURL returns this instance's advertised status page URL.
func (t *Tracker) StatusPageURL(ctx context.Context) string {
	return t.selfField(ctx, "status_page_url", func(i *registry.Instance) string { return i.StatusPageURL })
}

// ServiceName returns the configured application name.
func (t *Tracker) ServiceName() string { return t.serviceName }

// RegistryAddress returns the configured registry base address verbatim.
func (t *Tracker) RegistryAddress() string { return t.registryAddr }

// LastHeartbeatTime returns the last observed-registered time.
func (t *Tracker) LastHeartbeatTime() string {
	return time.Unix(0, t.lastHeartbeat.Load()).Format(TimeLayout)
}

// RegistrationTime returns the tracker creation time.
func (t *Tracker) RegistrationTime() string {
	return t.registrationTime.Format(TimeLayout)
}
