// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Supports JSON or text output, level filtering and rotating log files

package structured

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is debug, info, warn or error; unknown values mean info
	Level string

	// Format is json or text
	Format string

	// File, when set, receives log output through a rotating writer in
	// addition to stdout
	File string
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *logrus.Logger
	file  *lumberjack.Logger
}

// NewLogger creates a logger from options
func NewLogger(opts Options) *Logger {
	l := logrus.New()
	l.SetLevel(parseLevel(opts.Level))

	if strings.EqualFold(opts.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := &Logger{entry: l}
	if opts.File != "" {
		logger.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		l.SetOutput(io.MultiWriter(os.Stdout, logger.file))
	} else {
		l.SetOutput(os.Stdout)
	}

	return logger
}

// NewWithWriter creates a JSON logger writing to w, used in tests
func NewWithWriter(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetLevel(parseLevel(level))
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(w)
	return &Logger{entry: l}
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
