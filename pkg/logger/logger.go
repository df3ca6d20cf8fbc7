package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps logrus with additional functionality
type Logger struct {
	*logrus.Logger
	fields logrus.Fields
}

// Options configures a logger. Zero rotation values fall back to lumberjack defaults.
type Options struct {
	Level      string
	Format     string
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Output     io.Writer
}

// NewLogger creates a new logger instance
func NewLogger(level, logFile string) *Logger {
	return New(Options{
		Level:      level,
		File:       logFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
}

// New creates a logger from options
func New(opts Options) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)

	if opts.File != "" {
		logDir := filepath.Dir(opts.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Printf("Failed to create log directory: %v\n", err)
		} else {
			fileLogger := &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSize,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAge,
				Compress:   opts.Compress,
			}

			// Write to both file and the primary output
			log.SetOutput(io.MultiWriter(out, fileLogger))
		}
	}

	l := &Logger{
		Logger: log,
		fields: make(logrus.Fields),
	}
	l.SetFormatter(opts.Format)
	return l
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return New(Options{Level: "panic", Output: io.Discard})
}

// Resolve guarantees a non-nil logger for component code paths
func Resolve(l *Logger) *Logger {
	if l == nil {
		return NewLogger("info", "")
	}
	return l
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		Logger: l.Logger,
		fields: newFields,
	}
}

// WithFields adds multiple fields to the logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		Logger: l.Logger,
		fields: newFields,
	}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Fields returns a copy of the context fields
func (l *Logger) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return fields
}

// entry attaches the context fields and the key/value pairs in kv. A
// non-string key is rendered with fmt; a trailing key without a value is
// kept under "!BADKEY".
func (l *Logger) entry(kv []interface{}) *logrus.Entry {
	entry := l.Logger.WithFields(l.fields)
	if len(kv) == 0 {
		return entry
	}
	fields := make(logrus.Fields, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			fields["!BADKEY"] = kv[i]
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		fields[key] = kv[i+1]
	}
	return entry.WithFields(fields)
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, kv ...interface{}) {
	l.entry(kv).Debug(msg)
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, kv ...interface{}) {
	l.entry(kv).Info(msg)
}

// Warning logs a warning message with key/value pairs
func (l *Logger) Warning(msg string, kv ...interface{}) {
	l.entry(kv).Warning(msg)
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, kv ...interface{}) {
	l.entry(kv).Error(msg)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry(nil).Debugf(format, args...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry(nil).Infof(format, args...)
}

// Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.entry(nil).Warningf(format, args...)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry(nil).Errorf(format, args...)
}

// VotingLogger logs voting-specific events
func (l *Logger) VotingLogger(event, votingID, voterID, details string) {
	l.WithFields(map[string]interface{}{
		"event_type": "voting",
		"event":      event,
		"voting_id":  votingID,
		"voter_id":   voterID,
		"details":    details,
		"timestamp":  time.Now().Unix(),
	}).Info("Voting event logged")
}

// PerformanceLogger logs performance metrics
func (l *Logger) PerformanceLogger(operation string, duration time.Duration, success bool) {
	l.WithFields(map[string]interface{}{
		"event_type": "performance",
		"operation":  operation,
		"duration":   duration.Milliseconds(),
		"success":    success,
		"timestamp":  time.Now().Unix(),
	}).Debug("Performance event logged")
}

// StructuredError logs msg at error level with err and the given context
func (l *Logger) StructuredError(msg string, err error, context map[string]interface{}) {
	fields := map[string]interface{}{
		"error":     err.Error(),
		"timestamp": time.Now().Unix(),
	}

	for k, v := range context {
		fields[k] = v
	}

	l.WithFields(fields).Error(msg)
}

// SetLogLevel dynamically sets the log level
func (l *Logger) SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(logLevel)
	return nil
}

// SetFormatter sets the log formatter
func (l *Logger) SetFormatter(format string) {
	switch format {
	case "json":
		l.Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		l.Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// Close closes any open log files
func (l *Logger) Close() error {
	// lumberjack reopens lazily; nothing to release here
	return nil
}
