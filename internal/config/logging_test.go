package config

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if !NewLogger("dev", &buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("dev logger should enable debug")
	}
	if NewLogger("prod", &buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("prod logger should not enable debug")
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := filepath.Join(dir, fmt.Sprintf("journal-2024-03-0%dT00-00-00.log", i))
		if err := os.WriteFile(name, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := cleanupOldLogs(dir, 2); err != nil {
		t.Fatalf("cleanupOldLogs() error = %v", err)
	}

	left, _ := filepath.Glob(filepath.Join(dir, "journal-*.log"))
	if len(left) != 2 {
		t.Fatalf("kept %d files, want 2", len(left))
	}
	if filepath.Base(left[0]) != "journal-2024-03-04T00-00-00.log" {
		t.Errorf("oldest kept = %s, want the 4th", filepath.Base(left[0]))
	}
}

func TestSetupLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f, err := SetupLogFile(dir, 3)
	if err != nil {
		t.Fatalf("SetupLogFile() error = %v", err)
	}
	defer f.Close()

	if filepath.Dir(f.Name()) != dir {
		t.Errorf("log file created in %s, want %s", filepath.Dir(f.Name()), dir)
	}
}
