// internal/logger/interface.go

package logger

import "github.com/sirupsen/logrus"

// Sink is a destination for formatted log lines. Sinks are attached to a
// logger as logrus hooks, so every entry that passes the level filter is
// handed to each sink in attachment order.
type Sink interface {
	logrus.Hook

	// Close releases the destination. It must be safe to call more than once.
	Close() error

	// Name identifies the sink, e.g. "console" or the file path.
	Name() string
}
