package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
)

func TestLoggerFunctions_NoNilPointers(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logger function panicked: %v", r)
		}
	}()

	Debug("test debug", "key", "value")
	Info("test info", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	Debug("message only")
	Info("message only")
	Warn("message only")
	Error("message only")
}

func TestInitWritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	if err := config.Init(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config.Init: %v", err)
	}
	config.Set("log.file", filepath.Join(dir, "logs", "deserve.log"))

	Init(true)
	if GetLogger() == nil {
		t.Fatal("logger not initialized")
	}
	Debug("debug visible when verbose", "step", "abc")
}

func TestSetOutputCapturesLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("write failed", "step", "s1")
	if !strings.Contains(buf.String(), "write failed") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "step=s1") {
		t.Errorf("expected key-value pair in output, got %q", buf.String())
	}
}
