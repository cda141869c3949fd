package probe

import (
	"fmt"
	"os"

	"github.com/okian/finals/pkg/logger"
)

// SetupLogging initializes the global logger for the probe.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Finals Probe
============

Queries a running dashboard service and verifies every answer against the
compiled-in finals.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 5s)
  -verbose
        Log every check
  -help
        Show this help message

Examples:
  # Probe a local service
  go run ./cmd/probe

  # Probe another host with more workers
  go run ./cmd/probe -url http://finals.internal:8080 -workers 16 -verbose
`)
}
