package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/errors"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithFs(afero.NewMemMapFs()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Resolver.MaxDepth != 32 {
		t.Errorf("max depth = %d, want 32", cfg.Resolver.MaxDepth)
	}
	s := cfg.Engine.Scheduler
	if s.Host != "localhost" || s.Port != 8082 || s.Local {
		t.Errorf("scheduler = %+v", s)
	}
	if s.ProbeTimeout != time.Second {
		t.Errorf("probe timeout = %v", s.ProbeTimeout)
	}
	if cfg.Engine.Workers != 1 || cfg.Engine.LogDir != "." {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	fs := memFs(t, map[string]string{"nlpwire.yml": `
logging:
  level: debug
  format: json
resolver:
  max_depth: 8
engine:
  workers: 4
  log_dir: /var/log/nlpwire
  scheduler:
    host: scheduler.internal
    port: 9000
    probe_timeout: 250ms
process:
  attempts: 2
  timeout: 1m
telemetry:
  endpoint: otel.internal:4318
  sample_rate: 0.5
catalogs: [catalogs/, extra.yml]
`})
	cfg, err := Load(WithFs(fs))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Resolver.MaxDepth != 8 || cfg.Engine.Workers != 4 {
		t.Errorf("resolver/engine = %+v %+v", cfg.Resolver, cfg.Engine)
	}
	if got := cfg.Engine.Scheduler.Address(); got != "scheduler.internal:9000" {
		t.Errorf("address = %s", got)
	}
	if cfg.Engine.Scheduler.ProbeTimeout != 250*time.Millisecond {
		t.Errorf("probe timeout = %v", cfg.Engine.Scheduler.ProbeTimeout)
	}
	if cfg.Process.Attempts != 2 || cfg.Process.Timeout != time.Minute {
		t.Errorf("process = %+v", cfg.Process)
	}
	if !cfg.Telemetry.Enabled() || cfg.Telemetry.SampleRate != 0.5 {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
	if diff := cmp.Diff([]string{"catalogs/", "extra.yml"}, cfg.Catalogs); diff != "" {
		t.Errorf("catalogs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NLPWIRE_ENGINE_SCHEDULER_PORT", "9100")
	t.Setenv("NLPWIRE_LOGGING_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("NLPWIRE_ENGINE_WORKERS") })
	fs := memFs(t, map[string]string{
		"nlpwire.yml": "engine:\n  scheduler:\n    port: 9000\n",
		".env":        "NLPWIRE_ENGINE_WORKERS=3\nNLPWIRE_LOGGING_LEVEL=error\n",
	})

	cfg, err := Load(WithFs(fs))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Scheduler.Port != 9100 {
		t.Errorf("port = %d, want the environment's 9100", cfg.Engine.Scheduler.Port)
	}
	if cfg.Engine.Workers != 3 {
		t.Errorf("workers = %d, want 3 from .env", cfg.Engine.Workers)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, the environment should beat .env", cfg.Logging.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log level", "logging:\n  level: loud\n"},
		{"port out of range", "engine:\n  scheduler:\n    port: 70000\n"},
		{"too many attempts", "process:\n  attempts: 50\n"},
		{"sample rate above one", "telemetry:\n  sample_rate: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memFs(t, map[string]string{"config.yml": tt.yaml})
			if _, err := Load(WithFs(fs)); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestValidationErrorCode(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Engine.Workers = -1
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Errorf("Validate() = %v, want INVALID_DECLARATION", err)
	}
}

func TestResolveFiles(t *testing.T) {
	fs := memFs(t, map[string]string{
		"./config/config.yml": "",
		".env.nlpwire":        "",
		".env":                "",
	})
	files := (&Resolver{Fs: fs}).ResolveFiles("nlpwire", LoaderConfig{})
	if files.ConfigFile != "./config/config.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
	if files.EnvFile != ".env.nlpwire" {
		t.Errorf("env file = %q", files.EnvFile)
	}

	explicit := (&Resolver{Fs: fs}).ResolveFiles("nlpwire", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("explicit config file = %q", explicit.ConfigFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("ENGINE_LOG_DIR")
	want := []string{"engine_log_dir", "engine.log.dir", "engine.log_dir"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}
