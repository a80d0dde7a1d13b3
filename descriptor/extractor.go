package descriptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/visionlab/patchkit/errors"
	"github.com/visionlab/patchkit/logger"
	"github.com/visionlab/patchkit/observability"
	"github.com/visionlab/patchkit/pipeline"
)

// Extractor computes feature vectors for patch collections by batching them
// through a single inference backend. It is safe for concurrent use; each
// Extract call is an independent run with its own queue and accumulator.
type Extractor struct {
	cfg     pipeline.Config
	inf     Inferencer
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l.WithComponent("extractor")
		}
	}
}

// WithMetrics sets the metric instruments recorded per run.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// New creates an Extractor bound to an inference backend. The config is
// validated up front so a bad batch size fails here, before any run starts.
func New(cfg pipeline.Config, inf Inferencer, opts ...Option) (*Extractor, error) {
	if inf == nil {
		return nil, errors.MissingField("inferencer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{cfg: cfg, inf: inf, log: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract computes one FeatureVector per patch, in patch order. An empty
// input returns an empty result. Any backend failure aborts the run with no
// partial result.
func (e *Extractor) Extract(ctx context.Context, patches []Patch) ([]FeatureVector, error) {
	if !e.inf.IsAvailable(ctx) {
		return nil, errors.ProviderUnavailable(e.inf.Name())
	}

	runID := uuid.NewString()
	ctx, span := observability.StartSpan(ctx, "descriptor.extract",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("provider", e.inf.Name()),
			attribute.Int("patches", len(patches)),
			attribute.Int("batch.size", e.cfg.BatchSize),
		))
	defer span.End()

	log := e.log.WithFields(map[string]interface{}{
		logger.FieldRunID:     runID,
		logger.FieldProvider:  e.inf.Name(),
		logger.FieldPatches:   len(patches),
		logger.FieldBatchSize: e.cfg.BatchSize,
	})
	log.Debug("extraction started")

	e.metrics.RecordRunStart(ctx)
	start := time.Now()
	batches := 0
	feats, err := pipeline.Extract(ctx, e.cfg, patches,
		func(ctx context.Context, batch []Patch) ([]FeatureVector, error) {
			inferStart := time.Now()
			out, inferErr := e.inf.Infer(ctx, batch)
			e.metrics.RecordInference(ctx, e.inf.Name(), len(batch), time.Since(inferStart))
			if inferErr == nil {
				batches++
			}
			return out, inferErr
		})
	elapsed := time.Since(start)
	e.metrics.RecordRunEnd(ctx, e.inf.Name(), len(patches), batches, elapsed, err)

	if err != nil {
		span.RecordError(err)
		log.Error("extraction failed", logger.ErrorFields("extract", err))
		return nil, err
	}

	log.Info("extraction finished", logger.Fields(
		logger.FieldBatches, batches,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return feats, nil
}

// ExtractQuantized runs Extract and quantizes the result to uint8 vectors.
func (e *Extractor) ExtractQuantized(ctx context.Context, patches []Patch) ([]QuantizedVector, error) {
	feats, err := e.Extract(ctx, patches)
	if err != nil {
		return nil, err
	}
	return Quantize(feats), nil
}
