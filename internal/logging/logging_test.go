package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fundesk/internal/config"
)

func reset() {
	mu.Lock()
	defer mu.Unlock()
	root = root.WithOptions() // keep type, tests re-Init anyway
	debugMode = false
	categories = nil
}

func TestDisabledByDefault(t *testing.T) {
	t.Cleanup(reset)

	dir := t.TempDir()
	if err := Init(config.LoggingConfig{DebugMode: false}, dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	For(CategoryAPI).Info("should go nowhere")

	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("log directory created with debug_mode off")
	}
}

func TestCategoryToggle(t *testing.T) {
	t.Cleanup(reset)

	dir := t.TempDir()
	err := Init(config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"upload": false},
	}, dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	For(CategoryAPI).Info("api message")
	For(CategoryUpload).Info("upload message")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "fundesk.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "api message") {
		t.Error("enabled category not logged")
	}
	if strings.Contains(string(data), "upload message") {
		t.Error("disabled category was logged")
	}
}
