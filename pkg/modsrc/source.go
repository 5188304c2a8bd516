// SPDX-License-Identifier: MPL-2.0

// Package modsrc loads mod bundles from their on-disk representations.
//
// A mod is either a directory or a .modpkg archive (ZIP). Both carry the
// same three elements: a modinfo.cue descriptor at the top level, an
// optional assets directory, and an optional library file named by the
// descriptor. Both source kinds produce identical bundles so downstream
// code never cares where a mod came from.
package modsrc

import (
	"errors"
	"fmt"
	"strings"

	"modhost/pkg/modinfo"
)

const (
	// ArchiveExt is the reserved extension identifying archive-based mods.
	ArchiveExt = ".modpkg"

	// AssetsDirName is the assets directory/prefix, matched
	// case-insensitively at a mod's top level.
	AssetsDirName = "assets"
)

var (
	// ErrNotFound means the candidate location does not exist or is not a
	// mod source at all. Not an error to surface; discovery skips it.
	ErrNotFound = errors.New("mod source not found")

	// ErrEmptyBundle means the descriptor parsed but the mod carries
	// neither assets nor a library. The candidate is discarded.
	ErrEmptyBundle = errors.New("mod has neither assets nor a library")
)

type (
	// Bundle is the normalized result of loading one mod from any source.
	Bundle struct {
		// Info is the parsed descriptor, always present.
		Info *modinfo.Modinfo

		// Assets maps forward-slash paths relative to the assets root to
		// file contents. Nil or empty for code-only mods.
		Assets map[string][]byte

		// Library is the raw bytes of the declared code module, nil if
		// the mod has none.
		Library []byte
	}

	// Source loads a bundle from one kind of on-disk location.
	Source interface {
		// Load reads the mod at path. It returns ErrNotFound (possibly
		// wrapped) when path is not a candidate for this source kind,
		// ErrEmptyBundle when metadata parsed but no content was found,
		// and a descriptor error when modinfo.cue is missing or invalid.
		Load(path string) (*Bundle, error)
	}
)

// IsAssetMod reports whether the bundle carries any assets.
func (b *Bundle) IsAssetMod() bool {
	return len(b.Assets) > 0
}

// IsCodeMod reports whether the bundle carries a library.
func (b *Bundle) IsCodeMod() bool {
	return len(b.Library) > 0
}

// checkContent enforces the "asset mod or code mod" rule shared by both
// source kinds.
func (b *Bundle) checkContent(path string) error {
	if !b.IsAssetMod() && !b.IsCodeMod() {
		return fmt.Errorf("%s: %w", path, ErrEmptyBundle)
	}
	return nil
}

// isAssetPath splits a slash-separated path relative to the mod root into
// an asset key if its first segment is the assets directory. The key scheme
// is identical for both source kinds.
func isAssetPath(rel string) (key string, ok bool) {
	first, rest, found := strings.Cut(rel, "/")
	if !found || rest == "" {
		return "", false
	}
	if !strings.EqualFold(first, AssetsDirName) {
		return "", false
	}
	return rest, true
}
