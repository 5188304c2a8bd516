// SPDX-License-Identifier: MPL-2.0

// Package config handles host configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from ~/.config/modhost/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/modhost/config.cue on
// macOS, %APPDATA%\modhost\config.cue on Windows) and validated against a
// CUE schema. The mods directory is never derived from the process
// location: it comes from the config file, the MODHOST_MODS_PATH
// environment variable, or an explicit flag.
package config
