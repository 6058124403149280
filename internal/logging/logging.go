// Package logging builds the zap logger shared by all commands.
//
// Logs always go to the log file (when configured) so that web sessions
// and API failures can be diagnosed after the fact. Verbose mode adds a
// console sink on stderr; stdout stays reserved for command output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs the application logger.
//
// level is a zap level name ("debug", "info", "warn", "error"); verbose
// forces debug and adds stderr output. logFile may be empty to disable the
// file sink; with no sinks at all the returned logger is a no-op.
func New(level, logFile string, verbose bool) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		parsed = zapcore.DebugLevel
	}

	var outputs []string
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = append(outputs, logFile)
	}
	if verbose {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
