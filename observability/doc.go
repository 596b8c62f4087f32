// Package observability provides OpenTelemetry tracing and metrics for
// streamkit.
//
// InitTracer and InitMeter configure OTLP HTTP export for a consuming
// service. StreamMetrics holds the instruments streams and pagers
// record into; all of its methods are safe on a nil receiver, so
// instrumentation can stay unconfigured in tests and small tools.
package observability
