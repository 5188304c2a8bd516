// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to override the config directory.
// os.UserHomeDir() does not reliably respect the HOME environment variable
// on all platforms (e.g. macOS in CI), so tests set this instead.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
