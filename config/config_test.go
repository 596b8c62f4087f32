package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/streamkit/retry"
)

// fakeFS serves Exists from a set and applies env files from a map.
type fakeFS struct {
	t     *testing.T
	files map[string]bool
	envs  map[string]map[string]string
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }

func (f *fakeFS) LoadEnv(path string) error {
	for k, v := range f.envs[path] {
		f.t.Setenv(k, v)
	}
	return nil
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Name: "reader"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected development, got %s", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug in development")
	}
	if cfg.Logging.ServiceName != "reader" {
		t.Errorf("expected service name propagated to logging, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Tracing.ServiceName != "reader" || cfg.Metrics.ServiceName != "reader" {
		t.Error("expected service name propagated to observability sections")
	}
	if cfg.Retry.MaxAttempts != retry.Default().MaxAttempts {
		t.Errorf("expected default retry policy, got %+v", cfg.Retry)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Name = "" },
			wantErr: "config.name",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Environment = "qa" },
			wantErr: "config.environment",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "config.logging",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Name: "reader"}
			cfg.ApplyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := "name: reader\nenvironment: staging\nlogging:\n  level: warn\nretry:\n  max_attempts: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := Load("reader", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "reader" || cfg.Environment != "staging" {
		t.Errorf("unexpected base fields: %+v", cfg)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn, got %s", cfg.Logging.Level)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("name: reader\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGGING_LEVEL", "debug")

	var cfg Config
	if err := Load("reader", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override to win, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	fs := &fakeFS{
		t:     t,
		files: map[string]bool{".env.reader": true},
		envs: map[string]map[string]string{
			".env.reader": {"ENVIRONMENT": "production"},
		},
	}

	var cfg Config
	if err := Load("reader", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production from .env, got %q", cfg.Environment)
	}
}

func TestLoad_NoFilesIsFine(t *testing.T) {
	fs := &fakeFS{t: t, files: map[string]bool{}}

	var cfg Config
	if err := Load("reader", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("RETRY_MAX_ATTEMPTS")
	want := "retry.max_attempts"
	for _, v := range got {
		if v == want {
			return
		}
	}
	t.Errorf("expected %q among variants, got %v", want, got)
}
