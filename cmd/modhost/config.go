// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"modhost/internal/config"
	"modhost/internal/issue"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage modhost configuration",
	Long: `Manage modhost configuration.

Configuration is stored in:
  - Linux: ~/.config/modhost/config.cue
  - macOS: ~/Library/Application Support/modhost/config.cue
  - Windows: %APPDATA%\modhost\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{
			ConfigFilePath: cfgFile,
		})
		if err != nil {
			rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return err
		}

		fmt.Println(TitleStyle.Render("Current Configuration"))
		fmt.Println()
		printConfigValue("mods_dir", cfg.ModsDir)
		printConfigValue("log_level", cfg.LogLevel)
		printConfigValue("color_scheme", cfg.ColorScheme)
		fmt.Println()
		if path == "" {
			fmt.Println(SubtitleStyle.Render("(defaults; no config file found)"))
		} else {
			fmt.Println(SubtitleStyle.Render("loaded from " + path))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Println(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func printConfigValue(key, value string) {
	if value == "" {
		value = SubtitleStyle.Render("(not set)")
	} else {
		value = SuccessStyle.Render(value)
	}
	fmt.Printf("  %s: %s\n", ModStyle.Render(key), value)
}
