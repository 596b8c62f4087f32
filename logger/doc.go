// Package logger provides structured logging for streamkit using
// zerolog.
//
// It supports JSON and console output, level configuration, named
// component loggers, and ambient gating: For returns a live logger
// only when the call's options list the component, so per-call debug
// logging can be switched on without touching global levels.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.For(options.FromContext(ctx), "pager")
//	log.Debug("page fetched", logger.Fields("token", token))
package logger
