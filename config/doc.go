// Package config loads nlpwire's configuration.
//
// Values come from a YAML file, a .env file and NLPWIRE_-prefixed
// environment variables, in increasing order of precedence. Nested keys
// map to underscores: NLPWIRE_ENGINE_SCHEDULER_PORT sets
// engine.scheduler.port.
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("nlpwire.yml"))
package config
