package ports

// Logger defines the interface for session logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a progress message, visible only in verbose mode.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, rendering wrapped causes hierarchically.
	Error(err error)
	// SetVerbose toggles progress logging.
	SetVerbose(enabled bool)
}
