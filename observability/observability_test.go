package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStreamMetrics_NilSafe(t *testing.T) {
	var m *StreamMetrics
	ctx := context.Background()
	m.RecordStreamOpen(ctx)
	m.RecordStreamClose(ctx, 10)
	m.RecordStreamError(ctx, "UNAVAILABLE")
	m.RecordPageFetch(ctx, 3, time.Millisecond)
}

func TestStreamMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewStreamMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewStreamMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordStreamOpen(ctx)
	m.RecordPageFetch(ctx, 5, 10*time.Millisecond)
	m.RecordStreamClose(ctx, 5)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("expected recorded metrics")
	}

	names := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, mtr := range sm.Metrics {
			names[mtr.Name] = true
		}
	}
	for _, want := range []string{"stream.active", "stream.elements", "pager.pages", "pager.fetch.duration"} {
		if !names[want] {
			t.Errorf("missing metric %s (got %v)", want, names)
		}
	}
}

func TestStartSpan_Records(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer(defaultTracerName).Start(context.Background(), SpanPagerFetch)
	SetSpanError(ctx, context.DeadlineExceeded)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanPagerFetch {
		t.Errorf("expected span %s, got %s", SpanPagerFetch, spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected a recorded error event")
	}
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("svc")
	if tc.ServiceName != "svc" || tc.Endpoint == "" || tc.SampleRate != 1.0 {
		t.Errorf("unexpected tracer defaults: %+v", tc)
	}
	mc := DefaultMeterConfig("svc")
	if mc.ServiceName != "svc" || mc.Interval <= 0 {
		t.Errorf("unexpected meter defaults: %+v", mc)
	}
}
