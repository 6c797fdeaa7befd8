package engine

import (
	"net"
	"strconv"
	"time"

	"github.com/kbukum/nlpwire/validation"
)

// Scheduler defaults.
const (
	DefaultSchedulerHost = "localhost"
	DefaultSchedulerPort = 8082
)

// SchedulerConfig locates the remote scheduler.
type SchedulerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	// Local skips the probe and runs without a remote scheduler.
	Local         bool          `yaml:"local" mapstructure:"local"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
	ReportTimeout time.Duration `yaml:"report_timeout" mapstructure:"report_timeout"`
	// MaxFailures consecutive failed reports stop reporting for Cooldown.
	MaxFailures int           `yaml:"max_failures" mapstructure:"max_failures" validate:"gte=0"`
	Cooldown    time.Duration `yaml:"cooldown" mapstructure:"cooldown"`
}

// Address returns host:port.
func (c *SchedulerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ApplyDefaults fills unset fields.
func (c *SchedulerConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = DefaultSchedulerHost
	}
	if c.Port == 0 {
		c.Port = DefaultSchedulerPort
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = time.Second
	}
	if c.ReportTimeout <= 0 {
		c.ReportTimeout = 5 * time.Second
	}
	if c.MaxFailures == 0 {
		c.MaxFailures = 3
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
}

// Config configures a Runner.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler" mapstructure:"scheduler"`
	// Workers bounds how many independent tasks run at once.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	// LogDir receives one log file per run.
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`
	// Tracing wraps every task in an OpenTelemetry span.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Scheduler.ApplyDefaults()
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.LogDir == "" {
		c.LogDir = "."
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
