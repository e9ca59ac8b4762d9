package tracker

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/regstatus/logger"
)

// metrics holds the tracker's OpenTelemetry instruments. With no meter
// provider configured these are no-ops.
type metrics struct {
	lookupTotal    metric.Int64Counter
	lookupErrors   metric.Int64Counter
	lookupDuration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) *metrics {
	m := &metrics{}
	var err error

	m.lookupTotal, err = meter.Int64Counter("registry.lookup.total",
		metric.WithDescription("Total number of registry lookups"),
	)
	if err != nil {
		logger.Warn("creating registry.lookup.total counter", logger.Fields("error", err.Error()))
	}

	m.lookupErrors, err = meter.Int64Counter("registry.lookup.errors",
		metric.WithDescription("Registry lookups that failed in transport"),
	)
	if err != nil {
		logger.Warn("creating registry.lookup.errors counter", logger.Fields("error", err.Error()))
	}

	m.lookupDuration, err = meter.Float64Histogram("registry.lookup.duration",
		metric.WithDescription("Duration of registry lookups in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("creating registry.lookup.duration histogram", logger.Fields("error", err.Error()))
	}

	return m
}

func (m *metrics) recordLookup(ctx context.Context, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		if m.lookupErrors != nil {
			m.lookupErrors.Add(ctx, 1)
		}
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	if m.lookupTotal != nil {
		m.lookupTotal.Add(ctx, 1, attrs)
	}
	if m.lookupDuration != nil {
		m.lookupDuration.Record(ctx, d.Seconds(), attrs)
	}
}
