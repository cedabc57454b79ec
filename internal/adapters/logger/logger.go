package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/revive/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method of zerr.Error (go.trai.ch/zerr
// v0.3.0+); other errors fall back to standard Error() handling.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog with the pretty handler.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
}

// New creates a logger writing to stderr at info level.
func New() ports.Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a logger writing to the given writer. Used by tests
// to capture output.
func NewWithOutput(w io.Writer) *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &Logger{
		logger: slog.New(NewPrettyHandler(w, level)),
		level:  level,
	}
}

// SetVerbose toggles progress logging. Verbose mode lowers the handler
// level to debug; quiet mode raises it back to info.
func (l *Logger) SetVerbose(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if enabled {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

// Debug logs a progress message, visible only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error, rendering the wrapped cause chain hierarchically.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}
	l.logger.Error(formatChain(err))
}

// formatChain walks the error chain and renders it as a main message
// followed by an indented "Caused by:" list.
func formatChain(err error) string {
	var messages []string
	current := err

	for current != nil {
		if m, ok := current.(messager); ok {
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
		} else {
			messages = append(messages, current.Error())
			break
		}
	}

	lines := []string{"Error: " + messages[0]}
	for i, msg := range messages[1:] {
		if i == 0 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msg)
	}
	return strings.Join(lines, "\n")
}
