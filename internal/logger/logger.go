// Package logger provides a simple logging interface for cfx components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation. The production
// implementation is backed by zap and writes to a file, since the watch
// dashboard owns the terminal.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Config controls where and how verbosely the zap logger writes.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// File is the log file path. Empty logs to stderr.
	File string
}

// zapLogger implements Logger on top of a zap SugaredLogger.
type zapLogger struct {
	sugar  *zap.SugaredLogger
	prefix string
}

// New builds a zap-backed logger from cfg. CFX_DEBUG forces debug level.
func New(cfg Config, prefix string) (Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if os.Getenv("CFX_DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.DisableStacktrace = true
	zc.DisableCaller = true
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = "message"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}

	z, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &zapLogger{sugar: z.Sugar(), prefix: prefix}, nil
}

// NewFromCore wraps an existing zap core. Used by tests with zaptest/observer.
func NewFromCore(core zapcore.Core, prefix string) Logger {
	return &zapLogger{sugar: zap.New(core).Sugar(), prefix: prefix}
}

func (l *zapLogger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(l.format(format), args...)
}

func (l *zapLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(l.format(format), args...)
}

func (l *zapLogger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(l.format(format), args...)
}

func (l *zapLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(l.format(format), args...)
}

func (l *zapLogger) format(format string) string {
	if l.prefix == "" {
		return format
	}
	return l.prefix + " " + format
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Safe for use from the poller goroutine and the test goroutine.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger.
var defaultLogger = Noop()

// Default returns the default logger for the package.
// Discards everything until the CLI installs a configured logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
