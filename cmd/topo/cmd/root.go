// Package cmd provides the CLI commands for topo.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/logging"
	"github.com/topo-sh/topo/pkg/version"
)

var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the topo CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topo",
		Short: "Pick the files an LLM should read first out of a repository too big to fit in context",
		Long: `topo scans a repository, scores its files against a query, and writes
a token-budgeted JSONL manifest of the files most worth reading first.

It runs entirely locally with no network access or external services.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetVersionTemplate("topo version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to the topo log directory")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startLogging(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	if !debugMode && cfg.Logging.Level == "info" {
		return nil
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	if debugMode {
		logCfg.Level = "debug"
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("logging enabled", slog.String("level", logCfg.Level), slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
