// internal/logger/logger.go

package logger

import "github.com/sirupsen/logrus"

// Logger is the handle returned by the factory. It is a logrus logger with
// the two severity names logrus lacks.
//
// Fatal keeps its logrus meaning and exits the process; use Critical to emit
// a CRITICAL record and carry on.
type Logger struct {
	*logrus.Logger
	name string
}

// Name returns the logger identity.
func (l *Logger) Name() string {
	return l.name
}

// Warning logs a message at WARNING level.
func (l *Logger) Warning(args ...interface{}) {
	l.Log(logrus.WarnLevel, args...)
}

// Warningf logs a formatted message at WARNING level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Logf(logrus.WarnLevel, format, args...)
}

// Critical logs a message at CRITICAL level without exiting.
func (l *Logger) Critical(args ...interface{}) {
	l.Log(logrus.FatalLevel, args...)
}

// Criticalf logs a formatted message at CRITICAL level without exiting.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Logf(logrus.FatalLevel, format, args...)
}
