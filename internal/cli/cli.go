// Package cli implements the mindscape command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/buildinfo"
	"github.com/matzehuels/mindscape/pkg/config"
	"github.com/matzehuels/mindscape/pkg/observability"
	"github.com/matzehuels/mindscape/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "mindscape"

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

	// configPath is the value of the persistent --config flag.
	configPath string
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
		Use:          appName,
		Short:        "Mindscape lays out toggle-driven knowledge framework diagrams",
		Long:         `Mindscape is a CLI tool for laying out knowledge frameworks as node-link diagrams. Phases and components stay fixed while mental models and their visualizations are toggled in and placed by a force simulation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "engine config file (TOML)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads --config when set, else the user config file when it
// exists, else the defaults. Runs from the command line keep their layout
// cache on disk unless the file says otherwise.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	path := c.configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		c.Logger.Debug("loading config", "path", path)
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cfg.Cache.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && c.Logger.GetLevel() != log.DebugLevel {
		c.Logger.SetLevel(lvl)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. At debug level every
// engine hook is logged.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	runner, err := pipeline.NewRunnerFromConfig(cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	if c.Logger.GetLevel() <= log.DebugLevel {
		runner.Hooks = observability.NewLogHooks(c.Logger)
	}
	return runner, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mindscape/).
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

// configDir returns the config directory using XDG standard (~/.config/mindscape/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// defaultOutput derives an output path from the content path.
// "framework.yaml" with suffix ".layout.json" becomes "framework.layout.json".
func defaultOutput(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
