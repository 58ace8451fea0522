package types

// Logger defines the logging interface used by voxpath.
//
// It is compatible with zap.SugaredLogger and with the slog adapter in
// internal/logging. Arguments after msg are alternating key-value pairs.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a fatal-level message with optional key-value pairs and exits.
	Fatal(msg string, keysAndValues ...any)
}
