// Package styllog provides the CLI's structured debug logger. Library
// packages never import this: logging is a cmd/styml-only concern, the
// same split go-tony draws between its cmd/ and system/ packages and the
// libraries underneath them.
package styllog

import (
	"os"

	"go.uber.org/zap"
)

// New builds a sugared logger gated by the STYML_DEBUG environment
// variable: set to any non-empty value, debug-level structured logging
// goes to stderr; otherwise only warnings and above are logged. There is
// deliberately no CLI flag for this — the flag surface is fixed.
func New() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if os.Getenv("STYML_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// Falling back to a no-op logger keeps the CLI usable even if the
		// environment is hostile to zap's own stderr sink (e.g. a closed
		// fd 2); debug logging is diagnostic, not load-bearing.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
