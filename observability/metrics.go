package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the OpenTelemetry instruments for extraction observability.
// A nil *Metrics is valid: every method is a no-op, so instrumentation stays
// optional for library callers.
type Metrics struct {
	runTotal          metric.Int64Counter
	runActive         metric.Int64UpDownCounter
	runDuration       metric.Float64Histogram
	patchTotal        metric.Int64Counter
	batchTotal        metric.Int64Counter
	inferenceDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates the extraction instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("extraction.runs.total",
		metric.WithDescription("Total number of extraction runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.runs.total counter: %w", err)
	}

	runActive, err := meter.Int64UpDownCounter("extraction.runs.active",
		metric.WithDescription("Number of extraction runs in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.runs.active gauge: %w", err)
	}

	runDuration, err := meter.Float64Histogram("extraction.duration",
		metric.WithDescription("Duration of extraction runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.duration histogram: %w", err)
	}

	patchTotal, err := meter.Int64Counter("extraction.patches.total",
		metric.WithDescription("Total patches submitted for extraction"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.patches.total counter: %w", err)
	}

	batchTotal, err := meter.Int64Counter("extraction.batches.total",
		metric.WithDescription("Total inference batches processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.batches.total counter: %w", err)
	}

	inferenceDuration, err := meter.Float64Histogram("inference.duration",
		metric.WithDescription("Duration of single-batch inference calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inference.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("extraction.errors.total",
		metric.WithDescription("Total failed extraction runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extraction.errors.total counter: %w", err)
	}

	return &Metrics{
		runTotal:          runTotal,
		runActive:         runActive,
		runDuration:       runDuration,
		patchTotal:        patchTotal,
		batchTotal:        batchTotal,
		inferenceDuration: inferenceDuration,
		errorTotal:        errorTotal,
	}, nil
}

// RecordRunStart marks an extraction run as in flight.
func (m *Metrics) RecordRunStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.runActive.Add(ctx, 1)
}

// RecordRunEnd records the outcome of an extraction run.
func (m *Metrics) RecordRunEnd(ctx context.Context, provider string, patches, batches int, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.Bool("success", err == nil),
	)
	m.runActive.Add(ctx, -1)
	m.runTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, d.Seconds(), attrs)
	m.patchTotal.Add(ctx, int64(patches), attrs)
	m.batchTotal.Add(ctx, int64(batches), attrs)
	if err != nil {
		m.errorTotal.Add(ctx, 1, attrs)
	}
}

// RecordInference records one inference call.
func (m *Metrics) RecordInference(ctx context.Context, provider string, batchLen int, d time.Duration) {
	if m == nil {
		return
	}
	m.inferenceDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.Int("batch.len", batchLen),
	))
}
