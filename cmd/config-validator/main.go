package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/orgoj/originlog/internal/config"
)

const defaultPattern = "*.{yaml,yml}"

func newValidatorCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "config-validator <config-file|directory>",
		Short: "Validate originlog configuration files",
		Long: `Validate a single originlog configuration file, or every file in a
directory whose name matches --pattern.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validatePath(cmd.OutOrStdout(), args[0], pattern)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", defaultPattern, "glob for file names when validating a directory")
	return cmd
}

// validatePath validates path, or the matching files in it when it is a directory.
func validatePath(out io.Writer, path, pattern string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = matchingFiles(path, pattern)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files matching '%s' in %s", pattern, path)
		}
	}

	failed := 0
	for _, file := range files {
		if _, err := config.LoadConfig(file); err != nil {
			fmt.Fprintf(out, "Validation error: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: configuration is valid!\n", file)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d configuration files are invalid", failed, len(files))
	}
	return nil
}

// matchingFiles lists regular files directly inside dir whose base name matches pattern.
func matchingFiles(dir, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !g.Match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func main() {
	if err := newValidatorCmd().Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
