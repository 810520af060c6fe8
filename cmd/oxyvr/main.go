// Package main provides the oxyvr command: a desktop VR environment driven by the mouse camera
// tool, plus headless helpers for inspecting configuration and rig behavior.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgPath string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "oxyvr",
		Short: "oxyvr - desktop VR environment with a mouse camera",
		Long: `oxyvr shows a VR environment in a desktop window and drives its screen and viewer
with the mouse:
  left drag          rotate around the screen center
  right drag         pan
  left+right drag    zoom (or dolly with shift held)
  wheel              quick zoom (or dolly with shift held)
  R                  reset the camera

Start the window:      oxyvr run
Headless drag:         oxyvr simulate
Effective settings:    oxyvr config`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd, opts.verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(simulateCmd(opts))
	rootCmd.AddCommand(configCmd(opts))
	return rootCmd
}

// initLogging routes the global zerolog logger to a console writer on the command's stderr.
func initLogging(cmd *cobra.Command, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// loadSettings reads the --config file, or returns an empty store when none was given.
func loadSettings(opts *rootOptions) (*config.File, error) {
	if opts.cfgPath == "" {
		return config.NewFile(), nil
	}
	settings, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}
