// Package logging provides the Logger contract used across every layer of
// the delegate fabric, plus a logrus-backed default implementation.
//
// Grounded on pkg/mcast/types.Logger and pkg/mcast/definition/default_logger.go:
// same interface shape (Info/Warn/Error/Debug/Fatal, each with an f variant,
// plus ToggleDebug), but backed by logrus instead of the standard library
// log.Logger so the Thread, Timer and remote layers can attach structured
// fields (thread name, remote id, sequence number) instead of formatting
// them into the message string.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the contract every component accepts for diagnostics. Hosting
// applications may supply their own implementation, such as
// NewLogrusLogger; components fall back to Discard when none is given.
type Logger interface {
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})

	// ToggleDebug enables or disables Debug/Debugf output and returns the
	// new state.
	ToggleDebug(enabled bool) bool

	// WithField returns a derived Logger that attaches a structured field
	// to every subsequent message; used by Thread/Timer/remote to tag
	// messages with thread name, remote id, sequence number, etc.
	WithField(key string, value interface{}) Logger
}

// LogrusLogger is the default Logger, writing structured entries to stderr.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates the default Logger instance.
func NewLogrusLogger() *LogrusLogger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	return &LogrusLogger{entry: logrus.NewEntry(base)}
}

func (l *LogrusLogger) Info(v ...interface{})                   { l.entry.Info(v...) }
func (l *LogrusLogger) Infof(format string, v ...interface{})   { l.entry.Infof(format, v...) }
func (l *LogrusLogger) Warn(v ...interface{})                   { l.entry.Warn(v...) }
func (l *LogrusLogger) Warnf(format string, v ...interface{})   { l.entry.Warnf(format, v...) }
func (l *LogrusLogger) Error(v ...interface{})                  { l.entry.Error(v...) }
func (l *LogrusLogger) Errorf(format string, v ...interface{})  { l.entry.Errorf(format, v...) }
func (l *LogrusLogger) Fatal(v ...interface{})                  { l.entry.Fatal(v...) }
func (l *LogrusLogger) Fatalf(format string, v ...interface{})  { l.entry.Fatalf(format, v...) }

func (l *LogrusLogger) Debug(v ...interface{}) {
	l.entry.Debug(v...)
}

func (l *LogrusLogger) Debugf(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *LogrusLogger) ToggleDebug(enabled bool) bool {
	if enabled {
		l.entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		l.entry.Logger.SetLevel(logrus.InfoLevel)
	}
	return enabled
}

func (l *LogrusLogger) WithField(key string, value interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

// Discard is a Logger that drops everything; useful as a test default when
// a testing.T logger would add noise.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Info(v ...interface{})                  {}
func (discardLogger) Infof(string, ...interface{})            {}
func (discardLogger) Warn(v ...interface{})                  {}
func (discardLogger) Warnf(string, ...interface{})            {}
func (discardLogger) Error(v ...interface{})                 {}
func (discardLogger) Errorf(string, ...interface{})           {}
func (discardLogger) Debug(v ...interface{})                 {}
func (discardLogger) Debugf(string, ...interface{})           {}
func (discardLogger) Fatal(v ...interface{})                 {}
func (discardLogger) Fatalf(string, ...interface{})           {}
func (discardLogger) ToggleDebug(enabled bool) bool          { return enabled }
func (discardLogger) WithField(string, interface{}) Logger   { return discardLogger{} }
