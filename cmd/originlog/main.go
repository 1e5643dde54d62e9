package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orgoj/originlog/internal/config"
	"github.com/orgoj/originlog/internal/logger"
	"github.com/orgoj/originlog/internal/version"
)

// xdgConfigFile is looked up under the XDG config directories when --config is not given.
const xdgConfigFile = "originlog/config.yaml"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ORIGINLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "originlog",
		Short: "Configure the root logger and emit one sample message per severity",
		Long: `originlog configures the root logger with a file sink and an optional
console sink, then logs one message at each of DEBUG, INFO, WARNING, ERROR and
CRITICAL so the line format can be inspected.

Every line has the form
  LEVEL | TIMESTAMP | HOSTNAME | FILENAME | ORIGIN | MESSAGE

Examples:
  # Defaults: log.log, INFO, console on
  originlog

  # Only warnings and above, file only
  originlog --output t.log --level warning --console=false

  # Check a configuration file and exit
  originlog -t --config config/originlog.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "path to a YAML configuration file (default $XDG_CONFIG_HOME/"+xdgConfigFile+" if present)")
	flags.String("name", "", "logger name (every name resolves to the root logger)")
	flags.String("output", config.DefaultOutputFile, "log file, appended across runs")
	flags.String("level", config.DefaultLevel, "minimum severity: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	flags.Bool("console", true, "also write log lines to stdout")
	flags.BoolP("test", "t", false, "test configuration and exit (nginx style)")
	flags.Bool("version", false, "show version information and exit")

	for _, key := range []string{"config", "name", "output", "level", "console", "test", "version"} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", key, err))
		}
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	out := cmd.OutOrStdout()

	// Display version information if requested
	if v.GetBool("version") {
		fmt.Fprintln(out, version.VersionInfo())
		return nil
	}

	cfg, source, err := resolveConfig(v)
	if err != nil {
		return err
	}

	if v.GetBool("test") {
		if source == "" {
			source = "<defaults>"
		}
		fmt.Fprintf(out, "Configuration '%s' is valid.\n", source)
		return nil
	}

	opts := logger.OptionsFromConfig(*cfg)
	opts.Console = out
	lgr, err := logger.Configure(opts)
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] Error closing log sinks: %v\n", err)
		}
	}()

	emitSamples(lgr)
	return nil
}

// resolveConfig merges, in increasing priority: defaults, the configuration
// file, ORIGINLOG_* environment variables and explicitly set flags.
// It returns the configuration file used, if any.
func resolveConfig(v *viper.Viper) (*config.Config, string, error) {
	path := v.GetString("config")
	if path == "" {
		if found, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
			path = found
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, path, err
		}
		cfg = *loaded
	}

	if v.IsSet("name") {
		cfg.Name = v.GetString("name")
	}
	if v.IsSet("output") {
		cfg.OutputFile = v.GetString("output")
	}
	if v.IsSet("level") {
		cfg.Level = config.NormalizeLevel(v.GetString("level"))
	}
	if v.IsSet("console") {
		cfg.ShowConsoleOutput = v.GetBool("console")
	}

	if err := config.ValidateConfig(&cfg); err != nil {
		return nil, path, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, path, nil
}

func emitSamples(lgr *logger.Logger) {
	lgr.Debug("debug message")
	lgr.Info("info message")
	lgr.Warning("warning message")
	lgr.Error("error message")
	lgr.Critical("critical message")
}

func main() {
	// A missing .env file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("[WARN] Failed to load .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("[CRITICAL] %v\n", err)
		os.Exit(1)
	}
}
