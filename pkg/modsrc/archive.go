// SPDX-License-Identifier: MPL-2.0

package modsrc

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"modhost/pkg/modinfo"
)

// ArchiveSource loads mods packed as .modpkg archives (ZIP format).
// Archives are opened read-only; loading never touches the file.
type ArchiveSource struct{}

// Load reads the mod archive at path.
func (ArchiveSource) Load(archivePath string) (*Bundle, error) {
	if !strings.EqualFold(path.Ext(archivePath), ArchiveExt) {
		return nil, fmt.Errorf("%s: %w", archivePath, ErrNotFound)
	}
	if _, err := os.Stat(archivePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", archivePath, ErrNotFound)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	entries, err := normalizeEntries(reader.File)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archivePath, err)
	}

	meta, err := loadArchiveModinfo(archivePath, entries)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Info: meta}

	for rel, file := range entries {
		key, ok := isAssetPath(rel)
		if !ok {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("read asset %s: %w", rel, err)
		}
		if bundle.Assets == nil {
			bundle.Assets = make(map[string][]byte)
		}
		bundle.Assets[key] = data
	}

	if meta.HasLibrary() {
		for rel, file := range entries {
			if strings.Contains(rel, "/") || !strings.EqualFold(rel, meta.LibraryName) {
				continue
			}
			bundle.Library, err = readZipFile(file)
			if err != nil {
				return nil, fmt.Errorf("read library %s: %w", rel, err)
			}
			break
		}
	}

	if err := bundle.checkContent(archivePath); err != nil {
		return nil, err
	}
	return bundle, nil
}

// normalizeEntries maps cleaned slash paths relative to the mod root to
// their zip entries. Archives produced by Pack nest everything under one
// root folder; a shared root is stripped so packed and hand-made flat
// archives load identically. Entries escaping the root are rejected.
func normalizeEntries(files []*zip.File) (map[string]*zip.File, error) {
	entries := make(map[string]*zip.File, len(files))
	var names []string

	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(strings.ReplaceAll(f.Name, `\`, "/"))
		if name == "." || path.IsAbs(name) || strings.HasPrefix(name, "..") {
			return nil, fmt.Errorf("unsafe entry path %q", f.Name)
		}
		entries[name] = f
		names = append(names, name)
	}

	if prefix := commonRoot(names); prefix != "" {
		stripped := make(map[string]*zip.File, len(entries))
		for name, f := range entries {
			stripped[strings.TrimPrefix(name, prefix+"/")] = f
		}
		entries = stripped
	}

	return entries, nil
}

// commonRoot returns the single top-level directory shared by every name,
// or "" when entries already sit at the top level.
func commonRoot(names []string) string {
	root := ""
	for _, name := range names {
		first, _, found := strings.Cut(name, "/")
		if !found {
			return ""
		}
		if root == "" {
			root = first
			continue
		}
		if first != root {
			return ""
		}
	}
	return root
}

func loadArchiveModinfo(archivePath string, entries map[string]*zip.File) (*modinfo.Modinfo, error) {
	for rel, file := range entries {
		if strings.Contains(rel, "/") || !strings.EqualFold(rel, modinfo.FileName) {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("read descriptor: %w", err)
		}
		return modinfo.ParseBytes(data, archivePath+"!"+rel)
	}
	return nil, fmt.Errorf("%s: %w", archivePath, modinfo.ErrNotFound)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
