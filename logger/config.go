package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"` // stdout, stderr or a file path
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults logs info and above to stderr in console format.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = zerolog.LevelInfoValue
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

// Validate rejects levels zerolog does not know and unknown formats.
func (c *Config) Validate() error {
	if level, err := zerolog.ParseLevel(c.Level); err != nil || level == zerolog.NoLevel {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal (got: %q)", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case FormatJSON, FormatConsole, FormatPretty:
		return nil
	}
	return fmt.Errorf("logging.format must be one of %s, %s, %s (got: %q)", FormatJSON, FormatConsole, FormatPretty, c.Format)
}
