// SPDX-License-Identifier: MPL-2.0

package config

import "fmt"

// Log levels accepted by the log_level key.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Color schemes accepted by the color_scheme key.
const (
	ColorSchemeAuto  = "auto"
	ColorSchemeDark  = "dark"
	ColorSchemeLight = "light"
)

// Config is the effective host configuration.
type Config struct {
	// ModsDir is the root directory scanned for mods. Empty means not
	// configured; commands that need mods must refuse to guess.
	ModsDir string `mapstructure:"mods_dir"`

	// LogLevel selects the minimum level emitted by the logger.
	LogLevel string `mapstructure:"log_level"`

	// ColorScheme selects the rendering style for help text.
	ColorScheme string `mapstructure:"color_scheme"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    LogLevelInfo,
		ColorScheme: ColorSchemeAuto,
	}
}

// Validate checks constraints that sit outside the CUE schema's reach once
// environment overrides have been merged in.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn, or error)", c.LogLevel)
	}

	switch c.ColorScheme {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
	default:
		return fmt.Errorf("invalid color_scheme %q (want auto, dark, or light)", c.ColorScheme)
	}

	return nil
}
