// SPDX-License-Identifier: MPL-2.0

package modsrc

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"modhost/pkg/modinfo"
)

// DirSource loads mods laid out as plain directories.
type DirSource struct{}

// Load reads the mod directory at path.
func (DirSource) Load(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	meta, err := loadDirModinfo(path, entries)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Info: meta}

	if assetsDir := findEntry(entries, AssetsDirName, true); assetsDir != "" {
		bundle.Assets, err = collectAssets(filepath.Join(path, assetsDir))
		if err != nil {
			return nil, err
		}
	}

	if meta.HasLibrary() {
		// A declared but missing library file means "no code", not a
		// load failure.
		if libName := findEntry(entries, meta.LibraryName, false); libName != "" {
			bundle.Library, err = os.ReadFile(filepath.Join(path, libName))
			if err != nil {
				return nil, fmt.Errorf("read library %s: %w", libName, err)
			}
		}
	}

	if err := bundle.checkContent(path); err != nil {
		return nil, err
	}
	return bundle, nil
}

// loadDirModinfo locates and parses the descriptor among top-level entries.
func loadDirModinfo(path string, entries []os.DirEntry) (*modinfo.Modinfo, error) {
	name := findEntry(entries, modinfo.FileName, false)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", path, modinfo.ErrNotFound)
	}
	return modinfo.Parse(filepath.Join(path, name))
}

// findEntry returns the actual name of a top-level entry matching name
// case-insensitively, or "" if absent.
func findEntry(entries []os.DirEntry, name string, wantDir bool) string {
	for _, e := range entries {
		if e.IsDir() == wantDir && strings.EqualFold(e.Name(), name) {
			return e.Name()
		}
	}
	return ""
}

// collectAssets recursively gathers every file under root into a map keyed
// by forward-slash path relative to root.
func collectAssets(root string) (map[string][]byte, error) {
	assets := make(map[string][]byte)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", rel, err)
		}

		assets[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect assets under %s: %w", root, err)
	}

	return assets, nil
}
