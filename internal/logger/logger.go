package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug includes per-evaluation pipeline failures
	LevelDebug Level = iota
	// LevelInfo logs front-end lifecycle messages
	LevelInfo
	// LevelWarn logs recoverable problems
	LevelWarn
	// LevelError logs failures
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// StderrPath selects standard error instead of a log file
const StderrPath = "-"

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name case-insensitively, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger writes leveled, prefixed lines to a file or stream
type Logger struct {
	mu       sync.RWMutex
	level    Level
	out      *log.Logger
	prefix   string
	closer   io.Closer
	disabled bool
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// Init installs the global logger. Calling Init again replaces it and closes
// the previous one.
func Init(level Level, logPath string) error {
	l, err := New(level, logPath, "")
	if err != nil {
		return err
	}

	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()

	if prev != nil {
		return prev.Close()
	}
	return nil
}

// New creates a Logger appending to logPath. An empty path or LevelNone
// yields a disabled logger; StderrPath writes to standard error.
func New(level Level, logPath string, prefix string) (*Logger, error) {
	if level == LevelNone || logPath == "" {
		return &Logger{
			level:    level,
			out:      log.New(io.Discard, "", 0),
			prefix:   prefix,
			disabled: true,
		}, nil
	}

	if logPath == StderrPath {
		return NewWriter(level, os.Stderr, prefix), nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriter(level, file, prefix)
	l.closer = file
	return l, nil
}

// NewWriter creates a Logger writing to w. The caller keeps ownership of w.
func NewWriter(level Level, w io.Writer, prefix string) *Logger {
	return &Logger{
		level:  level,
		out:    log.New(w, "", 0),
		prefix: prefix,
	}
}

// Global returns the global logger, a disabled one if Init was never called
func Global() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger == nil {
		globalLogger = &Logger{
			level:    LevelNone,
			out:      log.New(io.Discard, "", 0),
			disabled: true,
		}
	}
	return globalLogger
}

// WithPrefix returns a logger sharing the output with an extended prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	combined := prefix
	if l.prefix != "" {
		combined = l.prefix + ":" + prefix
	}

	return &Logger{
		level:    l.level,
		out:      l.out,
		prefix:   combined,
		disabled: l.disabled,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.disabled || level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if l.prefix != "" {
		sb.WriteString("[")
		sb.WriteString(l.prefix)
		sb.WriteString("] ")
	}
	fmt.Fprintf(&sb, format, args...)

	l.out.Println(sb.String())
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Close closes the underlying log file, if the logger owns one
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.disabled = true
	return err
}

// Debug logs a debug message using the global logger
func Debug(format string, args ...interface{}) {
	Global().Debug(format, args...)
}

// Info logs an informational message using the global logger
func Info(format string, args ...interface{}) {
	Global().Info(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(format string, args ...interface{}) {
	Global().Warn(format, args...)
}

// Error logs an error message using the global logger
func Error(format string, args ...interface{}) {
	Global().Error(format, args...)
}
