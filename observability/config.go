package observability

import "time"

// Config configures trace and metric export.
type Config struct {
	// Endpoint is the OTLP HTTP collector host:port. Export is off when empty.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Environment is attached to every span and metric.
	Environment string `yaml:"environment" mapstructure:"environment"`
	// SampleRate is the fraction of runs traced, 0 to 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// MetricInterval is how often metrics are pushed.
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Enabled reports whether export is configured.
func (c *Config) Enabled() bool { return c.Endpoint != "" }
