package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umldraw/pkg/buildinfo"
	"github.com/matzehuels/umldraw/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "umldraw"

	// configFileName is the layout configuration looked up in the user
	// config directory when --config is not given.
	configFileName = "layout.toml"
)

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
	// Out receives command output (reports, generated file lines).
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Given a file it renders it like the render command; run bare it prints
// usage and does nothing else.
func (c *CLI) RootCommand() *cobra.Command {
	var opts renderOpts

	root := &cobra.Command{
		Use:          appName + " [file]",
		Short:        "umldraw turns Python classes into draw.io class diagrams",
		Long:         `umldraw reads a Python source file, extracts its classes with their attributes, methods and relations, and writes an editable draw.io UML class diagram.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.renderArgs(cmd, args, opts)
		},
	}
	addRenderFlags(root, &opts)

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/umldraw/).
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

// defaultConfigPath returns the user layout file if one exists.
func defaultConfigPath() (string, bool) {
	dir, err := configDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
