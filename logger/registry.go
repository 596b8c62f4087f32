package logger

import (
	"sync"

	"github.com/kbukum/streamkit/options"
)

// registry is the global named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns
// the global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// For returns the component logger when the ambient options list the
// component, and a no-op logger otherwise. Streams and pagers route
// their per-call logging through this so iteration stays silent unless
// the call site asked for it.
func For(set options.Set, component string) *Logger {
	if !set.LogsComponent(component) {
		return Nop()
	}
	l := Get(component)
	if id := set.RequestID(); id != "" {
		return l.WithFields(map[string]any{FieldRequestID: id})
	}
	return l
}
