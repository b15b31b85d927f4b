// Package logging provides structured logging for the pantry
// application.
//
// Initialize the logger once at startup:
//
//	logging.Initialize("info")
//
// Get a named logger per component:
//
//	logger := logging.GetLogger("mcp")
//	logger.Info("listening on %s", addr)
//
// Structured fields are supported both per-call and as persistent
// context:
//
//	logger.InfoWithFields("tool call complete",
//	    logging.Field("tool", name),
//	    logging.Field("duration_ms", elapsed.Milliseconds()),
//	)
//
//	reqLogger := logger.WithField("session_id", sessionID)
//
// Logger instances are immutable; WithField and WithFields return new
// instances, so loggers are safe to share across goroutines.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// LogField is a structured logging field.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger writes leveled, optionally structured log messages.
type Logger struct {
	level  LogLevel
	name   string
	fields map[string]interface{}
}

var (
	globalLogger *Logger
	initOnce     sync.Once
	// exitFunc is called by Fatal. Overridable for tests.
	exitFunc = os.Exit
)

// ParseLevel converts a level string into a LogLevel.
func ParseLevel(levelStr string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %q (must be DEBUG, INFO, WARN, ERROR, or FATAL)", levelStr)
	}
}

// Initialize sets up the global logger with the given default level.
// An unknown level string falls back to INFO.
func Initialize(levelStr string) error {
	level, err := ParseLevel(levelStr)
	globalLogger = &Logger{level: level, name: "pantry"}
	return err
}

// GetLogger returns a logger with the given component name.
// The global logger is lazily initialized at INFO on first use.
func GetLogger(name string) *Logger {
	initOnce.Do(func() {
		if globalLogger == nil {
			_ = Initialize("info")
		}
	})
	return &Logger{
		level:  globalLogger.level,
		name:   name,
		fields: map[string]interface{}{},
	}
}

// WithField returns a new logger carrying an additional persistent field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Field(key, value))
}

// WithFields returns a new logger carrying additional persistent fields.
func (l *Logger) WithFields(fields ...LogField) *Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{level: l.level, name: l.name, fields: merged}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.logf(DEBUG, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.logf(INFO, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logf(WARN, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.logf(ERROR, msg, args...)
}

// ErrorWithErr logs an error message together with an error value.
func (l *Logger) ErrorWithErr(msg string, err error, args ...interface{}) {
	args = append(args, err)
	l.logf(ERROR, msg+" - %v", args...)
}

// Fatal logs a fatal message and exits with code 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.logf(FATAL, msg, args...)
	exitFunc(1)
}

// DebugWithFields logs a debug message with structured fields.
func (l *Logger) DebugWithFields(msg string, fields ...LogField) {
	l.logFields(DEBUG, msg, fields...)
}

// InfoWithFields logs an info message with structured fields.
func (l *Logger) InfoWithFields(msg string, fields ...LogField) {
	l.logFields(INFO, msg, fields...)
}

// WarnWithFields logs a warning message with structured fields.
func (l *Logger) WarnWithFields(msg string, fields ...LogField) {
	l.logFields(WARN, msg, fields...)
}

// ErrorWithFields logs an error message with structured fields.
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) {
	l.logFields(ERROR, msg, fields...)
}

func (l *Logger) logf(level LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.write(level, fmt.Sprintf(msg, args...), l.fields)
}

func (l *Logger) logFields(level LogLevel, msg string, fields ...LogField) {
	if level < l.level {
		return
	}
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	l.write(level, msg, merged)
}

// write formats and emits a log line. DEBUG/INFO/WARN go to stdout,
// ERROR/FATAL to stderr.
func (l *Logger) write(level LogLevel, msg string, fields map[string]interface{}) {
	line := fmt.Sprintf("[%s] [%s] %s: %s", timestamp(), levelNames[level], l.name, msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		line += " |"
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, fields[k])
		}
	}

	if level >= ERROR {
		fmt.Fprintf(os.Stderr, "%s\n", line)
	} else {
		log.Println(line)
	}
}

// timestamp returns an RFC3339 timestamp. The LOG_TIMESTAMP env var
// overrides it for deterministic test output.
func timestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
