package options

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/streamkit/retry"
)

// Set is an immutable collection of ambient call options. The zero
// value is a valid, empty Set.
type Set struct {
	logComponents []string
	tracing       bool
	retry         *retry.Config
	requestID     string
	values        map[any]any
}

// Option configures a Set under construction.
type Option func(*Set)

// New builds a Set from options.
func New(opts ...Option) Set {
	var s Set
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// LoggingComponents sets the components allowed to emit debug logs.
func LoggingComponents(names ...string) Option {
	return func(s *Set) {
		s.logComponents = append([]string(nil), names...)
	}
}

// Tracing enables or disables span creation for the call.
func Tracing(enabled bool) Option {
	return func(s *Set) { s.tracing = enabled }
}

// Retry sets the retry policy applied by the policy layer (pager).
// Absent a policy, no retry occurs.
func Retry(cfg retry.Config) Option {
	return func(s *Set) { s.retry = &cfg }
}

// RequestID sets an explicit request ID for the call.
func RequestID(id string) Option {
	return func(s *Set) { s.requestID = id }
}

// Value attaches an arbitrary typed key-value pair. Use an unexported
// key type to avoid collisions, same as context.Context values.
func Value(key, val any) Option {
	return func(s *Set) {
		if s.values == nil {
			s.values = make(map[any]any)
		}
		s.values[key] = val
	}
}

// LogsComponent reports whether the named component may emit debug logs
// under this Set. An empty allowlist silences all components.
func (s Set) LogsComponent(name string) bool {
	for _, c := range s.logComponents {
		if c == name {
			return true
		}
	}
	return false
}

// LoggingComponents returns the configured component allowlist.
func (s Set) LoggingComponents() []string {
	return append([]string(nil), s.logComponents...)
}

// TracingEnabled reports whether spans should be created for the call.
func (s Set) TracingEnabled() bool { return s.tracing }

// Retry returns the configured retry policy, if any.
func (s Set) Retry() (retry.Config, bool) {
	if s.retry == nil {
		return retry.Config{}, false
	}
	return *s.retry, true
}

// RequestID returns the request ID, or "" when unset.
func (s Set) RequestID() string { return s.requestID }

// ValueOf returns an attached value by key.
func (s Set) ValueOf(key any) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Merge overlays the non-zero options of overlay onto base and returns
// the combined Set. Neither input is modified.
func Merge(base, overlay Set) Set {
	out := base
	if overlay.logComponents != nil {
		out.logComponents = append([]string(nil), overlay.logComponents...)
	}
	if overlay.tracing {
		out.tracing = true
	}
	if overlay.retry != nil {
		cfg := *overlay.retry
		out.retry = &cfg
	}
	if overlay.requestID != "" {
		out.requestID = overlay.requestID
	}
	if len(overlay.values) > 0 {
		merged := make(map[any]any, len(base.values)+len(overlay.values))
		for k, v := range base.values {
			merged[k] = v
		}
		for k, v := range overlay.values {
			merged[k] = v
		}
		out.values = merged
	}
	return out
}

// WithRequestID returns the Set itself when it already carries a
// request ID, or a copy with a fresh UUID otherwise.
func (s Set) WithRequestID() Set {
	if s.requestID != "" {
		return s
	}
	out := s
	out.requestID = uuid.NewString()
	return out
}

// setKey is the context key for a Set.
type setKey struct{}

// NewContext stores a Set in the context.
func NewContext(ctx context.Context, s Set) context.Context {
	return context.WithValue(ctx, setKey{}, s)
}

// FromContext retrieves the Set from context, or an empty Set.
func FromContext(ctx context.Context) Set {
	if s, ok := ctx.Value(setKey{}).(Set); ok {
		return s
	}
	return Set{}
}

// Context builds a Set from opts, overlays it onto whatever Set the
// context already carries, and returns the enriched context.
func Context(ctx context.Context, opts ...Option) context.Context {
	return NewContext(ctx, Merge(FromContext(ctx), New(opts...)))
}
