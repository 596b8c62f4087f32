package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		Interval:    15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StreamMetrics holds the instruments streams and pagers record into.
// A nil *StreamMetrics is valid and records nothing.
type StreamMetrics struct {
	streamsActive metric.Int64UpDownCounter
	elementsTotal metric.Int64Counter
	errorsTotal   metric.Int64Counter
	pagesTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

// NewStreamMetrics creates stream instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	streamsActive, err := meter.Int64UpDownCounter("stream.active",
		metric.WithDescription("Number of open streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.active gauge: %w", err)
	}

	elementsTotal, err := meter.Int64Counter("stream.elements",
		metric.WithDescription("Total elements delivered by streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.elements counter: %w", err)
	}

	errorsTotal, err := meter.Int64Counter("stream.errors",
		metric.WithDescription("Terminal errors surfaced by streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.errors counter: %w", err)
	}

	pagesTotal, err := meter.Int64Counter("pager.pages",
		metric.WithDescription("Pages fetched by pagers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pager.pages counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram("pager.fetch.duration",
		metric.WithDescription("Duration of page fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pager.fetch.duration histogram: %w", err)
	}

	return &StreamMetrics{
		streamsActive: streamsActive,
		elementsTotal: elementsTotal,
		errorsTotal:   errorsTotal,
		pagesTotal:    pagesTotal,
		fetchDuration: fetchDuration,
	}, nil
}

// RecordStreamOpen increments the open stream count.
func (m *StreamMetrics) RecordStreamOpen(ctx context.Context) {
	if m == nil {
		return
	}
	m.streamsActive.Add(ctx, 1)
}

// RecordStreamClose decrements the open stream count and records how
// many elements the stream delivered.
func (m *StreamMetrics) RecordStreamClose(ctx context.Context, elements int64) {
	if m == nil {
		return
	}
	m.streamsActive.Add(ctx, -1)
	m.elementsTotal.Add(ctx, elements)
}

// RecordStreamError records a terminal error surfaced to a consumer.
func (m *StreamMetrics) RecordStreamError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}

// RecordPageFetch records one page fetch and its duration.
func (m *StreamMetrics) RecordPageFetch(ctx context.Context, items int, duration time.Duration) {
	if m == nil {
		return
	}
	m.pagesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("items", items),
	))
	m.fetchDuration.Record(ctx, duration.Seconds())
}
