package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults for the logger parameters.
const (
	DefaultOutputFile = "log.log"
	DefaultLevel      = "INFO"
)

// Config holds the parameters of a logger configuration call.
type Config struct {
	// Name is accepted but every name resolves to the root logger.
	Name string `yaml:"name"`

	// OutputFile is opened in append/create mode.
	OutputFile string `yaml:"output_file" validate:"required"`

	// Level is one of NOTSET, DEBUG, INFO, WARN/WARNING, ERROR, FATAL/CRITICAL.
	Level string `yaml:"level" validate:"required,oneof=NOTSET DEBUG INFO WARN WARNING ERROR FATAL CRITICAL"`

	// ShowConsoleOutput adds a stdout sink next to the file sink.
	ShowConsoleOutput bool `yaml:"show_console_output"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		OutputFile:        DefaultOutputFile,
		Level:             DefaultLevel,
		ShowConsoleOutput: true,
	}
}

// LoadConfig loads and validates the configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Level = NormalizeLevel(cfg.Level)
	cfg.OutputFile = strings.TrimSpace(cfg.OutputFile)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// NormalizeLevel trims and upper-cases a level name.
func NormalizeLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// validateConfig performs semantic validation of the configuration
func validateConfig(cfg *Config) error {
	if info, err := os.Stat(cfg.OutputFile); err == nil && info.IsDir() {
		return fmt.Errorf("output_file '%s' is a directory", cfg.OutputFile)
	}
	return nil
}

// ValidateConfig uses go-playground/validator for struct-level validation.
// It complements the semantic validation in validateConfig.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	err := validate.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			message := fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
			if fe.Tag() == "oneof" {
				message = fmt.Sprintf("%s: '%v' is not one of [%s]", message, fe.Value(), fe.Param())
			}
			messages = append(messages, message)
		}
		return errors.New(strings.Join(messages, "; "))
	}

	return validateConfig(cfg)
}
