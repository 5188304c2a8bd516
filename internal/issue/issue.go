// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ModsDirUnreadableId Id = iota + 1
	DescriptorNotFoundId
	DescriptorInvalidId
	EmptyModId
	ArchiveUnreadableId
	DependencyNotFoundId
	DependencyVersionId
	DependencyCycleId
	LibraryLoadFailedId
	ConfigLoadFailedId
	AssetInjectionFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links
	extLinks []HttpLink  // external links that might help the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	modsDirUnreadableIssue = &Issue{
		id: ModsDirUnreadableId,
		mdMsg: `
# Cannot read the mods directory!

The configured mods directory exists but could not be enumerated.

## Things you can try:
- Check the directory permissions
- Point modhost at a different directory:
~~~
$ MODHOST_MODS_PATH=/path/to/mods modhost mods list
~~~
- Or set it in your config file:
~~~cue
mods_dir: "/path/to/mods"
~~~`,
	}

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No mod descriptor found!

A mod candidate has no ` + "`modinfo.cue`" + ` descriptor at its top level, so it
was skipped.

## Expected layout:
~~~
mymod/
  modinfo.cue      <- required
  assets/          <- optional asset files
  mymod.go         <- optional code library
~~~

## Things you can try:
- Create a minimal descriptor:
~~~cue
name: "mymod"
version: "1.0.0"
~~~
- The descriptor name is matched case-insensitively, but it must sit
  directly inside the mod directory (or archive root), not in a subfolder`,
	}

	descriptorInvalidIssue = &Issue{
		id: DescriptorInvalidId,
		mdMsg: `
# Invalid mod descriptor!

The ` + "`modinfo.cue`" + ` descriptor failed schema validation, so the mod was
skipped.

## Common issues:
- Missing or empty ` + "`name`" + ` or ` + "`version`" + `
- A dependency entry without ` + "`name`" + ` or ` + "`minimum_version`" + `
- Invalid CUE syntax (unbalanced braces, unquoted strings)

## Example of a valid descriptor:
~~~cue
name: "terrain-pack"
version: "2.1.0"
description: "High-res terrain textures"
dependencies: [
	{name: "base-textures", minimum_version: "1.4.0"},
]
~~~

## Things you can try:
- Validate the mod directly:
~~~
$ modhost mods validate ./mymod
~~~`,
	}

	emptyModIssue = &Issue{
		id: EmptyModId,
		mdMsg: `
# Empty mod!

The descriptor parsed, but the mod carries neither assets nor a code
library, so there is nothing to load.

## Things you can try:
- Add asset files under the ` + "`assets/`" + ` directory
- Or declare and ship a code library:
~~~cue
library_name: "mymod.go"
~~~`,
	}

	archiveUnreadableIssue = &Issue{
		id: ArchiveUnreadableId,
		mdMsg: `
# Cannot read mod archive!

A ` + "`.modpkg`" + ` file could not be opened as a ZIP archive.

## Things you can try:
- Re-create the archive from its source directory:
~~~
$ modhost mods pack ./mymod
~~~
- Verify the download completed; a truncated archive will not open
- Archives with entries escaping the root (` + "`../`" + ` paths) are rejected`,
	}

	dependencyNotFoundIssue = &Issue{
		id: DependencyNotFoundId,
		mdMsg: `
# Mod dependency not found!

A mod declares a dependency on another mod that is not loaded, or on a
mod that is itself invalid.

## Things you can try:
- List the loaded mods and their verdicts:
~~~
$ modhost mods list
~~~
- Install the missing mod into the mods directory
- Dependency names are matched exactly, including case`,
	}

	dependencyVersionIssue = &Issue{
		id: DependencyVersionId,
		mdMsg: `
# Mod dependency too old!

A dependency target is loaded, but its version is below the declared
minimum.

## How versions compare:
Versions are compared token by token: numeric runs compare as numbers,
other runs compare as text, and a longer version wins a tie. So
` + "`1.10.0`" + ` is newer than ` + "`1.9.0`" + `, and ` + "`1.2.1`" + ` is newer than ` + "`1.2`" + `.

## Things you can try:
- Update the dependency mod to a newer version
- Or lower the ` + "`minimum_version`" + ` in the dependent mod's descriptor`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Circular mod dependency!

Two or more mods depend on each other, directly or through a chain.
Every mod on the cycle is refused.

## Example of a cycle:
~~~cue
// a/modinfo.cue
dependencies: [{name: "b", minimum_version: "1.0.0"}]

// b/modinfo.cue
dependencies: [{name: "a", minimum_version: "1.0.0"}]
~~~

## Things you can try:
- Move the shared content into a third mod both can depend on
- Remove one direction of the dependency`,
	}

	libraryLoadFailedIssue = &Issue{
		id: LibraryLoadFailedId,
		mdMsg: `
# Mod library failed to load!

A code mod's library could not be interpreted, or its component
registration is malformed.

## A library must export:
~~~go
func Components() []map[string]any {
	return []map[string]any{
		{
			"capability": "my-feature",
			"new": func(handle any) (any, error) {
				return &MyComponent{}, nil
			},
		},
	}
}
~~~

## Things you can try:
- Check the interpreter error above for the failing line
- Every entry needs a non-empty ` + "`capability`" + ` and a ` + "`new`" + ` function`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The modhost configuration file could not be read or validated.

## Configuration file locations:
- Linux: ~/.config/modhost/config.cue
- macOS: ~/Library/Application Support/modhost/config.cue

## Example configuration:
~~~cue
mods_dir: "/home/user/.local/share/modhost/mods"
log_level: "info"
~~~

## Things you can try:
- Inspect the effective configuration:
~~~
$ modhost config show
~~~
- Remove the config file to fall back to defaults`,
	}

	assetInjectionFailedIssue = &Issue{
		id: AssetInjectionFailedId,
		mdMsg: `
# Asset injection failed!

The host refused one of a mod's asset files during activation.

## Things you can try:
- Check the asset path in the error above; the host may restrict where
  assets can land
- Validate the mod's content:
~~~
$ modhost mods validate ./mymod
~~~`,
	}

	issues = map[Id]*Issue{
		modsDirUnreadableIssue.Id():    modsDirUnreadableIssue,
		descriptorNotFoundIssue.Id():   descriptorNotFoundIssue,
		descriptorInvalidIssue.Id():    descriptorInvalidIssue,
		emptyModIssue.Id():             emptyModIssue,
		archiveUnreadableIssue.Id():    archiveUnreadableIssue,
		dependencyNotFoundIssue.Id():   dependencyNotFoundIssue,
		dependencyVersionIssue.Id():    dependencyVersionIssue,
		dependencyCycleIssue.Id():      dependencyCycleIssue,
		libraryLoadFailedIssue.Id():    libraryLoadFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		assetInjectionFailedIssue.Id(): assetInjectionFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
