// SPDX-License-Identifier: MPL-2.0

package modinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseBytes_Valid(t *testing.T) {
	t.Parallel()

	content := `
name:        "terrain-pack"
version:     "1.4.0"
description: "Extra terrain tiles"
author:      "someone"
library_name: "terrain.go"
dependencies: [
	{name: "base-tiles", minimum_version: "2.0"},
	{name: "HAT", minimum_version: "0.9"},
]
`
	info, err := ParseBytes([]byte(content), "modinfo.cue")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if info.Name != "terrain-pack" {
		t.Errorf("Name = %q, want terrain-pack", info.Name)
	}
	if info.Version != "1.4.0" {
		t.Errorf("Version = %q, want 1.4.0", info.Version)
	}
	if !info.HasLibrary() {
		t.Error("HasLibrary() = false, want true")
	}
	if len(info.Dependencies) != 2 {
		t.Fatalf("len(Dependencies) = %d, want 2", len(info.Dependencies))
	}
	// Declaration order is preserved.
	if info.Dependencies[0].Name != "base-tiles" || info.Dependencies[1].Name != HostLoaderName {
		t.Errorf("Dependencies order = %v", info.Dependencies)
	}
	if info.Dependencies[0].MinimumVersion != "2.0" {
		t.Errorf("MinimumVersion = %q, want 2.0", info.Dependencies[0].MinimumVersion)
	}
}

func TestParseBytes_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"missing name", `version: "1.0"`},
		{"missing version", `name: "x"`},
		{"empty name", `name: "", version: "1.0"`},
		{"empty version", `name: "x", version: ""`},
		{"dependency without floor", `name: "x", version: "1.0", dependencies: [{name: "y"}]`},
		{"dependency without name", `name: "x", version: "1.0", dependencies: [{minimum_version: "1"}]`},
		{"not cue", `{{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseBytes([]byte(tt.content), "modinfo.cue"); err == nil {
				t.Error("ParseBytes() error = nil, want error")
			}
		})
	}
}

func TestParse_FileHandling(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(path, []byte(`name: "m", version: "1"`), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if info.FilePath != path {
		t.Errorf("FilePath = %q, want %q", info.FilePath, path)
	}

	_, err = Parse(filepath.Join(tmpDir, "missing", FileName))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Parse(missing) error = %v, want ErrNotFound", err)
	}
}

func TestHasLibrary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		library string
		want    bool
	}{
		{"go source", "mod.go", true},
		{"none declared", "", false},
		{"wrong extension", "mod.dll", false},
		{"no extension", "mod", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &Modinfo{Name: "x", Version: "1", LibraryName: tt.library}
			if got := m.HasLibrary(); got != tt.want {
				t.Errorf("HasLibrary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDependsOn(t *testing.T) {
	t.Parallel()

	m := &Modinfo{
		Name:    "a",
		Version: "1",
		Dependencies: []Dependency{
			{Name: "b", MinimumVersion: "1.0"},
		},
	}

	if !m.DependsOn("b") {
		t.Error("DependsOn(b) = false, want true")
	}
	if m.DependsOn("B") {
		t.Error("DependsOn(B) = true, want false (name match is case-sensitive)")
	}
	if m.DependsOn("c") {
		t.Error("DependsOn(c) = true, want false")
	}
}
