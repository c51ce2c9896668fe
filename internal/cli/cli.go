// Package cli implements the flipstack command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/flipstack/pkg/buildinfo"
	"github.com/matzehuels/flipstack/pkg/config"
	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flipstack"

	// pngScale is the rasterization scale for PNG output.
	pngScale = 2.0
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
	Config *config.Config

	stderr     io.Writer
	configPath string
	verbose    bool
	logFile    *lumberjack.Logger
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flipstack finds the fewest flips that sort a stack of pancakes",
		Long: `Flipstack computes shortest flip sequences for the pancake problem and its
burnt variant by exhaustive breadth-first search, and serves the solver over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./flipstack.yaml, then the user config dir)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.diameterCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Setup
// =============================================================================

// setup loads the configuration, applies the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.LoaderOption
	if c.configPath != "" {
		opts = append(opts, config.WithFile(c.configPath))
	}
	loader := config.NewLoader(opts...)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if cfg.Log.File != "" {
		c.logFile = newLogFile(cfg.Log)
		c.Logger.SetOutput(io.MultiWriter(c.stderr, c.logFile))
	}

	if src := loader.Source(); src != "" {
		c.Logger.Debug("loaded config", "file", src)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// closeLogFile closes the rotating log file, if one was opened.
func (c *CLI) closeLogFile() error {
	if c.logFile == nil {
		return nil
	}
	c.Logger.SetOutput(c.stderr)
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// =============================================================================
// Solver Factory
// =============================================================================

// newSolver creates a solver bounded by the configured admission guard.
func (c *CLI) newSolver() (*solver.Solver, error) {
	guard := admission.DefaultGuard()
	if c.Config != nil {
		guard = c.Config.Guard()
	}
	return solver.New(guard, c.Logger)
}
