package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"isoflow/config"
	"isoflow/document"
	"isoflow/logging"
	"isoflow/pathfinding"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	close  func() error
}

func newRootCmd() *cobra.Command {
	a := &app{close: func() error { return nil }}

	rootCmd := &cobra.Command{
		Use:          "isoflow",
		Short:        "Isometric diagram editor",
		Long:         "isoflow edits isometric infrastructure diagrams in the terminal and exports them as images or graph descriptions.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (default: ./isoflow.yaml, then ~/.config/isoflow/isoflow.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newViewsCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	// The editor owns the terminal, so it only logs to a file.
	var fallback io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "edit" {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile, fallback)
	if err != nil {
		return err
	}
	a.logger = logger
	a.close = closeLog
	return nil
}

func (a *app) router() *pathfinding.Router {
	return pathfinding.NewRouter(a.cfg.Strategy, a.cfg.CacheSize)
}

// load reads a document without the file lock, for read-only commands.
func load(path string) ([]byte, document.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, document.FormatForPath(path), nil
}
