package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "svc", &buf)
	l.WithComponent("resolver").Info("group matched", Fields(FieldFormat, "txt"))

	out := buf.String()
	for _, want := range []string{`"component":"resolver"`, `"format":"txt"`, `"message":"group matched"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l := New(&Config{Level: "info", Format: "json", Output: path}, "svc")
	l.Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in log file, got %q", data)
	}
}

func TestTee(t *testing.T) {
	var primary, mirror bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &primary).Tee(&mirror)
	l.Info("both")

	if !strings.Contains(primary.String(), "both") {
		t.Error("expected message on primary output")
	}
	if !strings.Contains(mirror.String(), "both") {
		t.Error("expected message on mirrored output")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(os.ErrNotExist).Error("failed")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected key field in %s", out)
	}
	if !strings.Contains(out, "file does not exist") {
		t.Errorf("expected error field in %s", out)
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	l.Tee(&bytes.Buffer{}).Debug("still fine")
}

func TestInit(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger")
	}

	var buf bytes.Buffer
	l := Init(&Config{Level: "warn", Format: FormatJSON}, "nlpwire", &buf)
	t.Cleanup(func() {
		SetGlobalLogger(nil)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})
	if GetGlobalLogger() != l {
		t.Error("Init should install the global logger")
	}
	l.Info("dropped")
	l.Warn("kept")
	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("level not applied: %s", out)
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "debug", Format: FormatJSON}, "nlpwire", &buf)
	t.Cleanup(func() {
		SetGlobalLogger(nil)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	Debug("format registered", map[string]interface{}{FieldFormat: "txt"})
	Info("component registered")
	Warn("scheduler unreachable")
	Error("task failed")

	out := buf.String()
	for _, want := range []string{`"format":"txt"`, "format registered", "component registered", "scheduler unreachable", "task failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("global output missing %q: %s", want, out)
		}
	}
}

func TestConsoleServiceTag(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "nlpwire", &buf).Info("resolved")
	if out := buf.String(); !strings.Contains(out, "[NLP][INF]") || !strings.Contains(out, "resolved") {
		t.Errorf("console output = %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"empty level", Config{Format: "json"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("task", "t1", "status", "done", "dangling")
	if len(m) != 2 || m["task"] != "t1" || m["status"] != "done" {
		t.Errorf("unexpected fields %v", m)
	}
	if ErrorFields("t1", os.ErrClosed)[FieldError] != os.ErrClosed.Error() {
		t.Error("expected error string")
	}
}
