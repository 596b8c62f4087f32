// Package config loads and validates toolkit configuration.
//
// Configuration comes from a YAML file, a .env file, and process
// environment variables, in that order of precedence (later wins).
// Struct tag validation runs after loading.
//
// # Usage
//
//	var cfg config.Config
//	if err := config.Load("myservice", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Environment variables map onto nested keys by underscore, so
// LOGGING_LEVEL overrides logging.level.
package config
