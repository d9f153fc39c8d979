// Package logging builds the process logger and keeps credentials out of
// log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger constructs the process-wide zap logger. The "local" environment
// gets human-readable development output; everything else logs JSON at info.
func NewLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
