package config

import (
	"fmt"

	"github.com/kbukum/nlpwire/engine"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/observability"
	"github.com/kbukum/nlpwire/process"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/validation"
)

// ServiceName is used to find config files and tag logs.
const ServiceName = "nlpwire"

// ResolverConfig configures chain resolution.
type ResolverConfig struct {
	// MaxDepth bounds component nesting.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth" validate:"gte=0"`
}

// Config is the complete configuration.
type Config struct {
	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Resolver  ResolverConfig       `yaml:"resolver" mapstructure:"resolver"`
	Engine    engine.Config        `yaml:"engine" mapstructure:"engine"`
	Process   process.Config       `yaml:"process" mapstructure:"process"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	// Catalogs lists catalog files or directories loaded at startup.
	Catalogs []string `yaml:"catalogs" mapstructure:"catalogs"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Resolver.MaxDepth == 0 {
		c.Resolver.MaxDepth = resolver.DefaultMaxDepth
	}
	c.Engine.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	if c.Process.Attempts == 0 {
		c.Process.Attempts = 1
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	return nil
}

// Load reads, defaults and validates the configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
