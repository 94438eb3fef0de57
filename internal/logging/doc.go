// Package logging provides structured logging for vassctl.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used by the CLI, the dashboard and the exporter.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Per-request tracing (method, endpoint, status, duration)
//   - Info: Discovery results, exporter start-up
//   - Warn: Failed requests, failed scrapes
//   - Error: Fatal issues (startup failures)
//
// # Configuration
//
// Logging is silent unless a level is chosen, either with --log-level or the
// VASS_LOG_LEVEL environment variable:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Console output goes to stderr so that command output on stdout stays usable
// in pipes. Setting VASS_LOG_FILE additionally writes JSON lines to that file,
// rotated by size.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
