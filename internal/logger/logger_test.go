package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "garden.log")
	log, err := New(path, "info")
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("hidden")
	log.Info("daily rollover", zap.String("to", "2026-03-14"))
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"daily rollover"`) {
		t.Fatalf("missing message in %q", out)
	}
	if !strings.Contains(out, `"timestamp"`) {
		t.Fatalf("missing timestamp key in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug entry written at info level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "garden.log"), "loud")
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}
