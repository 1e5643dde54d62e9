// internal/logger/manager.go

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// RootLoggerName is the identity of the logger every configure call resolves to.
const RootLoggerName = "root"

// Registry owns the root logger and the sinks attached to it.
type Registry struct {
	mu       sync.Mutex
	root     *Logger
	sinks    []Sink
	resolver HostResolver
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithHostResolver replaces the hostname source used for every record.
func WithHostResolver(resolver HostResolver) RegistryOption {
	return func(r *Registry) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

// NewRegistry creates a registry with an unconfigured root logger. Until
// Configure is called the root logger has no sinks and drops everything.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{resolver: OSHostResolver{}}
	for _, opt := range opts {
		opt(r)
	}

	base := logrus.New()
	// Sinks are hooks; the logger's own output is unused.
	base.SetOutput(io.Discard)
	base.SetFormatter(&LineFormatter{})
	base.SetLevel(WARNING.logrusLevel())

	r.root = &Logger{Logger: base, name: RootLoggerName}
	return r
}

// Configure applies opts to the root logger and returns it.
//
// The level is validated and the output file opened before anything changes,
// so a failed call leaves the previous configuration untouched. A successful
// call closes the sinks of the previous configuration and installs the new
// ones; repeated calls never stack duplicate sinks.
func (r *Registry) Configure(opts Options) (*Logger, error) {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.OutputFile == "" {
		opts.OutputFile = DefaultOutputFile
	}

	formatter := &LineFormatter{}
	fileSink, err := NewFileSink(opts.OutputFile, formatter)
	if err != nil {
		return nil, err
	}

	sinks := make([]Sink, 0, 2)
	if opts.ShowConsoleOutput {
		sinks = append(sinks, NewConsoleSink(opts.Console, formatter))
	}
	sinks = append(sinks, fileSink)

	r.mu.Lock()
	defer r.mu.Unlock()

	lgr := r.resolve(opts.Name)
	previous := r.sinks

	hooks := make(logrus.LevelHooks)
	hooks.Add(&originHook{resolver: r.resolver})
	for _, s := range sinks {
		hooks.Add(s)
	}
	lgr.ReplaceHooks(hooks)
	lgr.SetLevel(level.logrusLevel())
	r.sinks = sinks
	closeSinks(previous)

	return lgr, nil
}

// resolve maps a requested logger name to a logger. Every name, including
// the empty one, resolves to the root logger.
func (r *Registry) resolve(_ string) *Logger {
	return r.root
}

// Root returns the root logger.
func (r *Registry) Root() *Logger {
	return r.root
}

// Sinks returns the names of the attached sinks in attachment order.
func (r *Registry) Sinks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.sinks))
	for _, s := range r.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Close detaches and closes every sink.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.root.ReplaceHooks(make(logrus.LevelHooks))
	var errs []error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink '%s': %w", s.Name(), err))
		}
	}
	r.sinks = nil
	return errors.Join(errs...)
}

// closeSinks closes sinks that were replaced by a reconfiguration.
func closeSinks(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Error closing sink '%s' during reconfiguration: %v\n", s.Name(), err)
		}
	}
}
