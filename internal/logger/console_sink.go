// internal/logger/console_sink.go

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleSinkName is the name reported by every console sink.
const ConsoleSinkName = "console"

// ConsoleSink writes formatted lines to a stream, stdout by default.
// The stream is never closed by the sink.
type ConsoleSink struct {
	mu        sync.Mutex
	writer    io.Writer
	formatter logrus.Formatter
}

// NewConsoleSink creates a sink for w. A nil writer means os.Stdout.
func NewConsoleSink(w io.Writer, formatter logrus.Formatter) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if formatter == nil {
		formatter = &LineFormatter{}
	}
	return &ConsoleSink{writer: w, formatter: formatter}
}

func (s *ConsoleSink) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (s *ConsoleSink) Fire(entry *logrus.Entry) error {
	line, err := s.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(line)
	return err
}

func (s *ConsoleSink) Close() error { return nil }

func (s *ConsoleSink) Name() string { return ConsoleSinkName }

var _ Sink = (*ConsoleSink)(nil)
