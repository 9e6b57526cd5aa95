package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rclayout/internal/config"
	"github.com/matzehuels/rclayout/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the root command loads the configuration
// (--config, or the default path), applies the log level and, when a log
// file is configured, tees log records into it. The logger is also attached
// to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rclayout rebuilds sizer layouts from legacy dialog resources",
		Long: `rclayout reads dialog forms with absolutely positioned controls and infers
the nested row, column, grid and group-box containers that reproduce the
original arrangement.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/rclayout/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this file (rotated)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	c.Config = cfg

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if cfg.Log.File != "" {
		w := newFileWriter(cfg.Log)
		c.closers = append(c.closers, w)
		c.Logger = teeLogger(c.Logger, c.stderr, w)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
