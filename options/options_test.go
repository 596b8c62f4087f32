package options

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/streamkit/retry"
)

func TestNew_Empty(t *testing.T) {
	var s Set
	if s.TracingEnabled() {
		t.Error("zero Set should not enable tracing")
	}
	if s.RequestID() != "" {
		t.Error("zero Set should have no request ID")
	}
	if _, ok := s.Retry(); ok {
		t.Error("zero Set should have no retry policy")
	}
	if s.LogsComponent("pager") {
		t.Error("zero Set should silence all components")
	}
}

func TestLoggingComponents(t *testing.T) {
	s := New(LoggingComponents("pager", "stream"))
	if !s.LogsComponent("pager") || !s.LogsComponent("stream") {
		t.Error("expected listed components to be enabled")
	}
	if s.LogsComponent("future") {
		t.Error("unlisted component should be silenced")
	}
}

func TestRetry_RoundTrip(t *testing.T) {
	cfg := retry.Config{MaxAttempts: 7, InitialBackoff: time.Second}
	s := New(Retry(cfg))
	got, ok := s.Retry()
	if !ok {
		t.Fatal("expected a retry policy")
	}
	if got.MaxAttempts != 7 {
		t.Errorf("expected MaxAttempts 7, got %d", got.MaxAttempts)
	}
}

func TestValue(t *testing.T) {
	type projectKey struct{}
	s := New(Value(projectKey{}, "my-project"))
	v, ok := s.ValueOf(projectKey{})
	if !ok || v != "my-project" {
		t.Errorf("expected my-project, got %v (ok=%v)", v, ok)
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := New(
		LoggingComponents("pager"),
		RequestID("base-id"),
		Retry(retry.Config{MaxAttempts: 2}),
	)
	overlay := New(RequestID("overlay-id"), Tracing(true))

	merged := Merge(base, overlay)
	if merged.RequestID() != "overlay-id" {
		t.Errorf("expected overlay-id, got %s", merged.RequestID())
	}
	if !merged.TracingEnabled() {
		t.Error("expected tracing from overlay")
	}
	if !merged.LogsComponent("pager") {
		t.Error("expected logging components from base to survive")
	}
	if cfg, ok := merged.Retry(); !ok || cfg.MaxAttempts != 2 {
		t.Error("expected retry policy from base to survive")
	}
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	type k struct{}
	base := New(Value(k{}, 1))
	_ = Merge(base, New(Value(k{}, 2)))
	if v, _ := base.ValueOf(k{}); v != 1 {
		t.Errorf("base mutated: got %v", v)
	}
}

func TestWithRequestID(t *testing.T) {
	s := New().WithRequestID()
	if s.RequestID() == "" {
		t.Error("expected a generated request ID")
	}
	explicit := New(RequestID("fixed")).WithRequestID()
	if explicit.RequestID() != "fixed" {
		t.Errorf("expected explicit ID to stick, got %s", explicit.RequestID())
	}
}

func TestContext_RoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), New(Tracing(true)))
	if !FromContext(ctx).TracingEnabled() {
		t.Error("expected tracing from context")
	}
	if FromContext(context.Background()).TracingEnabled() {
		t.Error("bare context should yield empty Set")
	}
}

func TestContext_Overlay(t *testing.T) {
	ctx := NewContext(context.Background(), New(LoggingComponents("pager")))
	ctx = Context(ctx, RequestID("req-1"))

	got := FromContext(ctx)
	if !got.LogsComponent("pager") {
		t.Error("expected base components to survive overlay")
	}
	if got.RequestID() != "req-1" {
		t.Errorf("expected req-1, got %s", got.RequestID())
	}
}
