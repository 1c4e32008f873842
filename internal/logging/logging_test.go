package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := New(Options{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.WithFields(logrus.Fields{"collection": "tasks", "page": 2}).Debug("page loaded")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := string(data)
	for _, want := range []string{"level=debug", `msg="page loaded"`, "collection=tasks", "page=2"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestNew_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	log, closer, err := New(Options{Dir: dir, Level: "warn"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	_ = closer.Close()

	data, _ := os.ReadFile(Path(dir))
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("log = %q", data)
	}
}

func TestNew_RequiresDir(t *testing.T) {
	if _, _, err := New(Options{}); err == nil {
		t.Fatalf("New without dir returned nil error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
