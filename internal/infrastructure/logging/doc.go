// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output, debug level, caller info
//
// Logs go to stderr by default so CLI commands keep stdout for their own
// output.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	mount := logger.Component("mount")
//	mount.Info("App mounted", zap.String("app", "posts"), zap.Int("routes", 3))
//
// Components accept a nil *Logger; use OrNop to normalize it.
package logging
