package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger provides structured logging for application services
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// WriterLogger writes structured log lines to an io.Writer in either json
// or text format
type WriterLogger struct {
	mu     sync.Mutex
	out    io.Writer
	format string
}

// NewWriterLogger creates a logger writing to out. format is "json" or "text"
func NewWriterLogger(out io.Writer, format string) *WriterLogger {
	return &WriterLogger{out: out, format: format}
}

// Log writes one log line
func (l *WriterLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if l.format == "json" {
		entry := map[string]interface{}{
			"ts":    timestamp,
			"level": level,
			"msg":   message,
		}
		for k, v := range metadata {
			entry[k] = v
		}
		if data, err := json.Marshal(entry); err == nil {
			fmt.Fprintln(l.out, string(data))
		}
		return
	}

	fmt.Fprintf(l.out, "%s [%s] %s", timestamp, level, message)
	for k, v := range metadata {
		fmt.Fprintf(l.out, " %s=%v", k, v)
	}
	fmt.Fprintln(l.out)
}
