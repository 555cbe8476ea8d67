// Package logging provides a minimal logging interface and adapters for meshkit.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn,
// Error) that history stores, models and actions use for observability:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - MeshLogger with component/session context and domain helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	kit, err := meshkit.New(func(o *meshkit.Options) { o.Logger = logger })
package logging
