// SPDX-License-Identifier: MPL-2.0

// Package modinfo defines the parsed mod descriptor and its CUE schema.
package modinfo

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"modhost/pkg/cueutil"
)

const (
	// FileName is the descriptor filename. Sources match it
	// case-insensitively among a mod's top-level entries.
	FileName = "modinfo.cue"

	// HostLoaderName is the reserved dependency name denoting the host
	// loader itself rather than another mod. Its detected version is the
	// host's own version string, never looked up in the registry.
	HostLoaderName = "HAT"

	// LibraryExt is the extension a declared library filename must carry.
	// Code modules are Go source interpreted by the component loader.
	LibraryExt = ".go"
)

var (
	//go:embed modinfo_schema.cue
	modinfoSchema string

	// ErrNotFound is returned when no descriptor exists at the given path.
	// Callers check it with errors.Is.
	ErrNotFound = errors.New("modinfo.cue not found")
)

type (
	// Dependency is a static minimum-version requirement on another mod
	// (or on the host loader, see HostLoaderName). It carries no reference
	// to the mod it targets; resolution is a registry concern.
	Dependency struct {
		Name           string `json:"name"`
		MinimumVersion string `json:"minimum_version"`
	}

	// Modinfo is one mod's parsed descriptor, immutable after parse.
	Modinfo struct {
		// Name uniquely identifies the mod within a registry.
		Name string `json:"name"`

		// Version is the mod's own version string.
		Version string `json:"version"`

		Description string `json:"description,omitempty"`
		Author      string `json:"author,omitempty"`

		// LibraryName is the filename of an optional code module bundled
		// at the mod's top level.
		LibraryName string `json:"library_name,omitempty"`

		// Dependencies in declaration order.
		Dependencies []Dependency `json:"dependencies,omitempty"`

		// FilePath is where this descriptor was loaded from (not in CUE).
		FilePath string `json:"-"`
	}
)

// HasLibrary reports whether the descriptor declares a loadable code module.
// A library name with the wrong extension is ignored, matching the
// permissive source behavior for missing library files.
func (m *Modinfo) HasLibrary() bool {
	return m.LibraryName != "" && filepath.Ext(m.LibraryName) == LibraryExt
}

// DependsOn reports whether the descriptor declares a dependency on name.
func (m *Modinfo) DependsOn(name string) bool {
	for _, dep := range m.Dependencies {
		if dep.Name == name {
			return true
		}
	}
	return false
}

// Parse reads and parses a descriptor from path.
func Parse(path string) (*Modinfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes parses descriptor content. The schema enforces the required
// fields (non-empty name and version), so a Modinfo returned here is valid.
func ParseBytes(data []byte, path string) (*Modinfo, error) {
	result, err := cueutil.ParseAndDecodeString[Modinfo](
		modinfoSchema,
		data,
		"#Modinfo",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	meta := result.Value
	meta.FilePath = path
	return meta, nil
}
