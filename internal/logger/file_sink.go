// internal/logger/file_sink.go

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// FileSink appends formatted lines to a file. The file is opened once and
// held until Close.
type FileSink struct {
	mu        sync.Mutex
	writer    io.WriteCloser
	formatter logrus.Formatter
	path      string
}

// NewFileSink opens path in append/create mode.
func NewFileSink(path string, formatter logrus.Formatter) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("file sink requires a path")
	}
	if formatter == nil {
		formatter = &LineFormatter{}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &FileSink{
		writer:    file,
		formatter: formatter,
		path:      path,
	}, nil
}

// Levels implements logrus.Hook. Level filtering is done by the logger.
func (s *FileSink) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire writes the entry to the file.
func (s *FileSink) Fire(entry *logrus.Entry) error {
	line, err := s.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer == nil {
		return fmt.Errorf("file sink %s is closed", s.path)
	}
	if _, err := s.writer.Write(line); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer == nil {
		return nil
	}
	err := s.writer.Close()
	s.writer = nil
	return err
}

// Name returns the file path.
func (s *FileSink) Name() string {
	return s.path
}

// Ensure FileSink implements the Sink interface.
var _ Sink = (*FileSink)(nil)
