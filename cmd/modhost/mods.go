// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modhost/internal/issue"
	"modhost/pkg/modinfo"
	"modhost/pkg/modreg"
	"modhost/pkg/modsrc"
)

var packOutput string

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "Inspect, validate, and package mods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var modsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered mods and their dependency verdicts",
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

		if reg.Len() == 0 {
			fmt.Println(SubtitleStyle.Render("No mods found."))
			return nil
		}

		fmt.Println(TitleStyle.Render("Discovered mods"))
		fmt.Println()
		failures := map[issue.Id]bool{}
		for _, m := range reg.Mods() {
			verdict := SuccessStyle.Render("valid")
			if !reg.Valid(m) {
				verdict = ErrorStyle.Render("invalid")
			}
			fmt.Printf("  %s %s  %s  %s\n",
				ModStyle.Render(m.Name()),
				SubtitleStyle.Render(m.Info.Version),
				kindLabel(m),
				verdict)

			for _, dep := range reg.Resolve(m) {
				if dep.Status == modreg.StatusValid {
					continue
				}
				fmt.Printf("    %s requires %s >= %s (%s)\n",
					WarningStyle.Render("!"),
					dep.Declaration.Name,
					dep.Declaration.MinimumVersion,
					dep.Status)
				if id, ok := dependencyIssueId(dep.Status); ok {
					failures[id] = true
				}
			}
		}
		renderDependencyIssues(failures)
		return nil
	},
}

var modsValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a single mod directory or archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		bundle, err := sourceFor(path).Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			renderValidationIssue(err)
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Println(SuccessStyle.Render("✓ ") + ModStyle.Render(bundle.Info.Name) +
			" " + bundle.Info.Version + " is a well-formed mod")
		if bundle.IsAssetMod() {
			fmt.Printf("  assets: %d file(s)\n", len(bundle.Assets))
		}
		if bundle.IsCodeMod() {
			fmt.Printf("  library: %s\n", bundle.Info.LibraryName)
		}
		for _, dep := range bundle.Info.Dependencies {
			fmt.Printf("  requires: %s >= %s\n", dep.Name, dep.MinimumVersion)
		}
		return nil
	},
}

var modsPackCmd = &cobra.Command{
	Use:   "pack <dir>",
	Short: "Package a mod directory into a .modpkg archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modDir := filepath.Clean(args[0])

		out, err := modsrc.Pack(modDir, packOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			renderValidationIssue(err)
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Println(SuccessStyle.Render("✓ ") + "packed " + ModStyle.Render(modDir) +
			" into " + ModStyle.Render(out))
		return nil
	},
}

func init() {
	modsPackCmd.Flags().StringVarP(&packOutput, "output", "o", "", "output archive path (default <dir>.modpkg)")

	modsCmd.AddCommand(modsListCmd)
	modsCmd.AddCommand(modsValidateCmd)
	modsCmd.AddCommand(modsPackCmd)
}

// openRegistry builds a registry on the effective mods directory.
func openRegistry() (*modreg.Registry, error) {
	dir := effectiveModsDir()
	if dir == "" {
		return nil, issue.NewErrorContext().
			WithOperation("locate mods directory").
			WithSuggestion("Set mods_dir in the config file").
			WithSuggestion("Or export " + "MODHOST_MODS_PATH").
			WithSuggestion("Or pass --mods-dir").
			BuildError()
	}

	return modreg.New(modreg.Options{
		ModsDir:     dir,
		HostVersion: Version,
		Logger:      newLogger(),
	})
}

// sourceFor picks the mod source matching the path shape.
func sourceFor(path string) modsrc.Source {
	if strings.EqualFold(filepath.Ext(path), modsrc.ArchiveExt) {
		return modsrc.ArchiveSource{}
	}
	return modsrc.DirSource{}
}

// renderValidationIssue prints the catalog entry matching a load failure.
func renderValidationIssue(err error) {
	var id issue.Id
	switch {
	case errors.Is(err, modsrc.ErrEmptyBundle):
		id = issue.EmptyModId
	case errors.Is(err, modinfo.ErrNotFound):
		id = issue.DescriptorNotFoundId
	case errors.Is(err, modsrc.ErrNotFound):
		id = issue.ArchiveUnreadableId
	default:
		id = issue.DescriptorInvalidId
	}

	if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// dependencyIssueId maps a dependency verdict to its catalog entry.
// StatusValid has no entry.
func dependencyIssueId(status modreg.DepStatus) (issue.Id, bool) {
	switch status {
	case modreg.StatusNotFound:
		return issue.DependencyNotFoundId, true
	case modreg.StatusInvalidVersion:
		return issue.DependencyVersionId, true
	case modreg.StatusRecursive:
		return issue.DependencyCycleId, true
	default:
		return 0, false
	}
}

// renderDependencyIssues prints each distinct failure kind's catalog entry
// once, after the listing, in a stable order.
func renderDependencyIssues(failures map[issue.Id]bool) {
	for _, id := range []issue.Id{
		issue.DependencyNotFoundId,
		issue.DependencyVersionId,
		issue.DependencyCycleId,
	} {
		if !failures[id] {
			continue
		}
		if rendered, err := issue.Get(id).Render("dark"); err == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}
}

// kindLabel describes what a mod carries.
func kindLabel(m *modreg.Mod) string {
	switch {
	case m.IsAssetMod() && m.IsCodeMod():
		return SubtitleStyle.Render("[assets+code]")
	case m.IsCodeMod():
		return SubtitleStyle.Render("[code]")
	default:
		return SubtitleStyle.Render("[assets]")
	}
}
