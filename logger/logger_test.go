package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/streamkit/options"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNew(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "my-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	if l := New(cfg, "test"); l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
	bad := Config{Level: "loud", Format: "json"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestRegistry_GetUnregistered(t *testing.T) {
	if l := Get("never-registered"); l == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestRegistry_GetRegistered(t *testing.T) {
	want := NewDefault("svc").WithComponent("custom")
	Register("custom", want)
	if got := Get("custom"); got != want {
		t.Error("expected registered logger back")
	}
}

func TestFor_GatedByOptions(t *testing.T) {
	enabled := For(options.New(options.LoggingComponents("pager")), "pager")
	if enabled.GetLogger().GetLevel() == zerolog.Disabled {
		t.Error("listed component should get a live logger")
	}

	silenced := For(options.New(), "pager")
	if silenced.GetLogger().GetLevel() != zerolog.Disabled {
		t.Error("unlisted component should get the no-op logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "fetch", "elements", 42)
	if m["op"] != "fetch" || m["elements"] != 42 {
		t.Errorf("unexpected fields: %v", m)
	}
	if len(Fields("dangling")) != 0 {
		t.Error("odd argument should be dropped")
	}
}
