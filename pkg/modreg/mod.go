// SPDX-License-Identifier: MPL-2.0

// Package modreg owns the set of discovered mods and resolves their
// dependency constraints before anything is activated.
package modreg

import (
	"crypto/sha256"

	"modhost/pkg/modinfo"
	"modhost/pkg/modsrc"
)

// Mod is one loaded mod: its descriptor, content, and (lazily computed)
// resolved dependencies. Constructed by exactly one successful source load
// and discarded only as a whole.
type Mod struct {
	// Info is the parsed descriptor.
	Info *modinfo.Modinfo

	// Assets maps forward-slash paths to file contents.
	Assets map[string][]byte

	// Library is the raw code-module bytes, nil for asset-only mods.
	Library []byte

	// SourcePath is where the mod was loaded from (directory or archive).
	SourcePath string

	// resolved caches the last resolution result. resolvedFor is a hash
	// of the declared dependency list the cache was computed against, so
	// a descriptor swap with a coincidentally equal dependency count
	// cannot masquerade as fresh.
	resolved    []ResolvedDependency
	resolvedFor [sha256.Size]byte
	hasResolved bool
}

// NewMod builds a Mod from a loaded bundle.
func NewMod(bundle *modsrc.Bundle, sourcePath string) *Mod {
	return &Mod{
		Info:       bundle.Info,
		Assets:     bundle.Assets,
		Library:    bundle.Library,
		SourcePath: sourcePath,
	}
}

// Name returns the mod's declared name.
func (m *Mod) Name() string {
	return m.Info.Name
}

// IsAssetMod reports whether the mod carries assets.
func (m *Mod) IsAssetMod() bool {
	return len(m.Assets) > 0
}

// IsCodeMod reports whether the mod carries a library.
func (m *Mod) IsCodeMod() bool {
	return len(m.Library) > 0
}

// Dependencies returns the cached resolution result, or nil if none is
// fresh. Resolution does not self-invalidate when other mods change;
// callers that mutate the registry must call Invalidate themselves.
func (m *Mod) Dependencies() []ResolvedDependency {
	if deps, ok := m.freshDependencies(); ok {
		return deps
	}
	return nil
}

// Invalidate drops the cached resolution so the next resolve recomputes.
func (m *Mod) Invalidate() {
	m.resolved = nil
	m.hasResolved = false
}

func (m *Mod) freshDependencies() ([]ResolvedDependency, bool) {
	if !m.hasResolved || m.resolvedFor != m.declHash() {
		return nil, false
	}
	return m.resolved, true
}

func (m *Mod) storeDependencies(deps []ResolvedDependency) {
	m.resolved = deps
	m.resolvedFor = m.declHash()
	m.hasResolved = true
}

// declHash derives the freshness marker from the declared dependency list.
func (m *Mod) declHash() [sha256.Size]byte {
	h := sha256.New()
	for _, dep := range m.Info.Dependencies {
		h.Write([]byte(dep.Name))
		h.Write([]byte{0})
		h.Write([]byte(dep.MinimumVersion))
		h.Write([]byte{1})
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
