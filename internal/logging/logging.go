// Package logging provides config-driven categorized logging for fundesk.
// Logs go to ~/.fundesk/logs/fundesk.log; with debug_mode off nothing is
// written, so normal CLI output stays clean for piping.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fundesk/internal/config"
)

// Category names a logging subsystem. Categories can be toggled
// individually in the config file.
type Category string

const (
	CategoryAPI    Category = "api"    // REST calls and error mapping
	CategoryUI     Category = "ui"     // TUI lifecycle and page switches
	CategoryUpload Category = "upload" // file upload queue
	CategoryExport Category = "export" // export downloads
	CategoryConfig Category = "config" // config load/save
)

var (
	mu         sync.RWMutex
	root       = zap.NewNop()
	categories map[string]bool
	debugMode  bool
)

// Init builds the process logger from config. Safe to call once at
// startup; before Init every category logger is a no-op.
func Init(cfg config.LoggingConfig, dir string) error {
	if !cfg.DebugMode {
		return nil
	}

	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	zapCfg.OutputPaths = []string{filepath.Join(logDir, "fundesk.log")}
	zapCfg.ErrorOutputPaths = zapCfg.OutputPaths

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	root = logger
	debugMode = true
	categories = cfg.Categories
	mu.Unlock()
	return nil
}

// For returns the logger for a category. Disabled categories (explicitly
// set to false) log nothing.
func For(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if !debugMode {
		return zap.NewNop()
	}
	if enabled, ok := categories[string(cat)]; ok && !enabled {
		return zap.NewNop()
	}
	return root.Named(string(cat))
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
