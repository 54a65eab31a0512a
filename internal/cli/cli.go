// Package cli implements the typetower command-line interface.
//
// This package provides commands for generating typed source code from
// example documents and JSON Schemas, inspecting the inferred type graph,
// and managing the local cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - gen: Generate source code from samples or a JSON Schema
//   - graph: Export the inferred type graph (JSON, DOT, SVG, PNG, PDF)
//   - languages: List supported target languages
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/typetower/pkg/buildinfo"
	"github.com/matzehuels/typetower/pkg/cache"
	"github.com/matzehuels/typetower/pkg/httputil"
	"github.com/matzehuels/typetower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "typetower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "typetower",
		Short:        "Typetower generates typed code from example data",
		Long:         `Typetower infers a type graph from JSON, YAML, or TOML samples (or a JSON Schema) and generates matching type declarations in Go, TypeScript, or Python.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.genCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	resultCache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(resultCache, nil, newHTTPClient(noCache), c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newHTTPClient creates the document fetcher used for URL sources. When
// caching is disabled the fetcher goes straight to the network.
func newHTTPClient(noCache bool) *httputil.Client {
	if noCache {
		return httputil.NewClient(nil)
	}
	dir, err := cacheDir()
	if err != nil {
		return httputil.NewClient(nil)
	}
	httpCache, err := httputil.NewCache(filepath.Join(dir, "http"), cache.DefaultTTL)
	if err != nil {
		return httputil.NewClient(nil)
	}
	return httputil.NewClient(httpCache)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/typetower/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseLanguages parses a comma-separated language string into a slice.
// An empty string returns nil so callers can detect "no preference".
func parseLanguages(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
