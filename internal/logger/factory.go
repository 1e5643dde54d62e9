// internal/logger/factory.go

package logger

import (
	"io"

	"github.com/orgoj/originlog/internal/config"
)

// Defaults applied when the corresponding option is empty.
const (
	DefaultOutputFile = config.DefaultOutputFile
	DefaultLevel      = config.DefaultLevel
)

// Options are the parameters of a configure call.
type Options struct {
	// Name is accepted for compatibility; every name resolves to the root logger.
	Name string
	// OutputFile is opened in append/create mode. Empty means DefaultOutputFile.
	OutputFile string
	// Level is a severity name such as "INFO". Empty means DefaultLevel.
	Level string
	// ShowConsoleOutput adds a console sink next to the file sink.
	ShowConsoleOutput bool
	// Console is the console sink destination; nil means os.Stdout.
	Console io.Writer
}

// DefaultOptions returns the options used when nothing is specified.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig converts a loaded configuration file into Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Name:              cfg.Name,
		OutputFile:        cfg.OutputFile,
		Level:             cfg.Level,
		ShowConsoleOutput: cfg.ShowConsoleOutput,
	}
}

var defaultRegistry = NewRegistry()

// StartLogger configures the process-wide root logger with a console sink
// (when showConsoleOutput is set) and a file sink, and returns it.
func StartLogger(name, outputFile, level string, showConsoleOutput bool) (*Logger, error) {
	return defaultRegistry.Configure(Options{
		Name:              name,
		OutputFile:        outputFile,
		Level:             level,
		ShowConsoleOutput: showConsoleOutput,
	})
}

// Configure is StartLogger with an Options value.
func Configure(opts Options) (*Logger, error) {
	return defaultRegistry.Configure(opts)
}

// Root returns the process-wide root logger.
func Root() *Logger {
	return defaultRegistry.Root()
}

// Shutdown closes every sink attached to the process-wide root logger.
func Shutdown() error {
	return defaultRegistry.Close()
}
