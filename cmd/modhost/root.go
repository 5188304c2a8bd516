// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modhost.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"modhost/internal/config"
	"modhost/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// modsDirFlag overrides the configured mods directory.
	modsDirFlag string

	// loadedConfig is the effective configuration after initRootConfig.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without subcommands.
	rootCmd = &cobra.Command{
		Use:   "modhost",
		Short: "A mod discovery and loading host",
		Long: TitleStyle.Render("modhost") + SubtitleStyle.Render(" - A mod discovery and loading host") + `

modhost scans a mods directory for mod packages, validates their
descriptors, resolves inter-mod dependencies, and activates the
survivors: asset files are handed to the host and code libraries are
interpreted into live components.

Mods ship as plain directories or as '.modpkg' archives, each with a
'modinfo.cue' descriptor at the top level.

` + SubtitleStyle.Render("Examples:") + `
  modhost mods list             List discovered mods and their verdicts
  modhost mods validate ./m     Validate a single mod without loading it
  modhost mods pack ./m         Package a mod directory into an archive
  modhost activate              Load and activate every valid mod
  modhost config show           Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modhost/config.cue)")
	rootCmd.PersistentFlags().StringVar(&modsDirFlag, "mods-dir", "", "mods directory (overrides config and MODHOST_MODS_PATH)")

	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the configuration file and environment overrides.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg
}

// effectiveModsDir resolves the mods directory from the flag, then config
// (which already folds in the environment). Empty means unconfigured.
func effectiveModsDir() string {
	if modsDirFlag != "" {
		return modsDirFlag
	}
	if loadedConfig != nil {
		return loadedConfig.ModsDir
	}
	return ""
}

// newLogger builds the CLI logger honoring the configured level; --verbose
// forces debug.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	level := config.LogLevelInfo
	if loadedConfig != nil {
		level = loadedConfig.LogLevel
	}
	if verbose {
		level = config.LogLevelDebug
	}

	switch level {
	case config.LogLevelDebug:
		logger.SetLevel(log.DebugLevel)
	case config.LogLevelWarn:
		logger.SetLevel(log.WarnLevel)
	case config.LogLevelError:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
