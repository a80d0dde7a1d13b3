// Package observability provides OpenTelemetry metrics and tracing for
// patchkit. InitMeter and InitTracer wire OTLP HTTP exporters and set the
// global providers; Metrics bundles the extraction instruments recorded by
// the descriptor layer.
package observability
