// Package cli implements the kintsugi command-line interface.
//
// This package provides commands for rendering scene manifests into
// hand-drawn engineering drawings, previewing scenes over HTTP, tuning
// sketch parameters interactively, and managing the artifact cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Perturb a scene's geometry and write SVG/JSON artifacts
//   - serve: Preview scenes in the browser with live re-rendering
//   - tune: Interactively adjust noise parameters for a scene
//   - fonts: List the available lettering fonts
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timcondit/kintsugi/pkg/buildinfo"
	"github.com/timcondit/kintsugi/pkg/cache"
	"github.com/timcondit/kintsugi/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "kintsugi"

	// cacheURLEnv selects a remote cache backend (redis:// or mongodb://).
	cacheURLEnv = "KINTSUGI_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kintsugi",
		Short:        "Kintsugi renders engineering drawings with a hand-drawn feel",
		Long:         `Kintsugi is a CLI tool for turning exact 2D geometry into wabi-sabi engineering drawings: every line, circle, and arc is perturbed with deterministic noise so the output looks sketched by hand while staying reproducible.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.NewObservedCache(store, "artifact"), c.Logger), nil
}

// newCache picks the cache backend. A KINTSUGI_CACHE_URL pointing at Redis
// or MongoDB wins over the local file cache; --no-cache disables caching
// entirely.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	if url := os.Getenv(cacheURLEnv); url != "" {
		switch {
		case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
			return cache.NewRedisCache(ctx, url)
		case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
			return cache.NewMongoCache(ctx, url, appName, "artifacts")
		}
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/kintsugi/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
