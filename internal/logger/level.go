// internal/logger/level.go

package logger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrInvalidLevel is returned when a severity name is not recognized.
var ErrInvalidLevel = errors.New("invalid log level")

// Level is a severity threshold. Records below the configured level are dropped.
type Level int

const (
	// Log levels
	DEBUG    Level = 10
	INFO     Level = 20
	WARNING  Level = 30
	ERROR    Level = 40
	CRITICAL Level = 50
)

// Level to string mapping
var levelNames = map[Level]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
}

// LevelNameToLevel maps accepted level names, aliases included, to level values.
var LevelNameToLevel = map[string]Level{
	"NOTSET":   DEBUG,
	"DEBUG":    DEBUG,
	"INFO":     INFO,
	"WARN":     WARNING,
	"WARNING":  WARNING,
	"ERROR":    ERROR,
	"FATAL":    CRITICAL,
	"CRITICAL": CRITICAL,
}

// ParseLevel resolves a level name. Matching ignores case and surrounding space.
func ParseLevel(name string) (Level, error) {
	level, ok := LevelNameToLevel[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return level, nil
}

// String returns the canonical name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// logrusLevel returns the logrus threshold matching l.
// CRITICAL maps to FatalLevel; records at that level are emitted with
// Logger.Log, which does not exit the process.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

// levelLabel renders a logrus level with the severity names used in output lines.
func levelLabel(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel:
		return "ERROR"
	default: // Fatal and Panic
		return "CRITICAL"
	}
}
