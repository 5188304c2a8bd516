// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"modhost/internal/issue"
	"modhost/pkg/component"
)

var activateTarget string

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Load every valid mod: inject assets and start components",
	Long: `Load every valid mod from the mods directory.

Assets of valid mods are written under the target directory (--target),
preserving their relative paths. Code libraries are interpreted and their
registered components constructed and initialized. Invalid mods are
reported and skipped; one broken mod never blocks the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if err := reg.Discover(); err != nil {
			rendered, _ := issue.Get(issue.ModsDirUnreadableId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return err
		}
		reg.ResolveAll()

		logger := newLogger().WithPrefix("activate")

		if activateTarget != "" {
			skipped, err := reg.InjectAssets(fileInjector(activateTarget))
			if err != nil {
				rendered, _ := issue.Get(issue.AssetInjectionFailedId).Render("dark")
				fmt.Fprint(os.Stderr, rendered)
				return &ExitError{Code: 1, Err: err}
			}
			if skipped > 0 {
				logger.Warn("mods skipped during asset injection", "count", skipped)
			}
		} else {
			logger.Debug("no target directory, skipping asset injection")
		}

		host := &loggingHost{logger: logger}
		if err := reg.StartComponents(host, nil); err != nil {
			rendered, _ := issue.Get(issue.LibraryLoadFailedId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Println(SuccessStyle.Render("✓ ") +
			fmt.Sprintf("activated %d mod(s), %d component(s) running", reg.Len(), host.count))
		return nil
	},
}

func init() {
	activateCmd.Flags().StringVarP(&activateTarget, "target", "t", "", "directory receiving injected asset files")
}

// fileInjector writes each asset under root, creating parent directories.
func fileInjector(root string) component.InjectorFunc {
	return func(path string, data []byte) error {
		dst := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create asset directory: %w", err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write asset: %w", err)
		}
		return nil
	}
}

// loggingHost is the CLI's stand-in host application: it accepts every
// component and logs its lifecycle.
type loggingHost struct {
	logger *log.Logger
	count  int
}

func (h *loggingHost) AddComponent(c any) {
	h.count++
	h.logger.Debug("component added", "type", fmt.Sprintf("%T", c))
}

func (h *loggingHost) RemoveComponent(c any) {
	h.count--
	h.logger.Debug("component removed", "type", fmt.Sprintf("%T", c))
}

func (h *loggingHost) Initialize(c any) error {
	h.logger.Debug("component initialized", "type", fmt.Sprintf("%T", c))
	return nil
}
