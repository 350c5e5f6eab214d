package logger

import (
	"github.com/ideamans/go-l10n"
	"github.com/sirupsen/logrus"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// LogrusLogger adapts a logrus entry to the pipeline logger so server-mode
// pipeline output shares the HTTP access log's structured stream.
type LogrusLogger struct {
	entry *logrus.Entry
	level ports.LogLevel
}

// NewLogrus creates a logger backed by the given logrus instance.
func NewLogrus(base *logrus.Logger, level ports.LogLevel) *LogrusLogger {
	return &LogrusLogger{
		entry: logrus.NewEntry(base),
		level: level,
	}
}

// Debug logs a debug message.
func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.entry.Debug(l10n.F(msg, args...))
}

// Info logs an informational message.
func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.entry.Info(l10n.F(msg, args...))
}

// Warn logs a warning message.
func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.entry.Warn(l10n.F(msg, args...))
}

// Error logs an error message.
func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.entry.Error(l10n.F(msg, args...))
}

// WithComponent returns a new logger tagged with the component name.
func (l *LogrusLogger) WithComponent(component string) ports.Logger {
	return &LogrusLogger{
		entry: l.entry.WithField("component", component),
		level: l.level,
	}
}

// Ensure LogrusLogger implements ports.Logger
var _ ports.Logger = (*LogrusLogger)(nil)
