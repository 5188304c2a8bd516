// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"modhost/internal/issue"
	"modhost/pkg/modreg"
	"modhost/pkg/modsrc"
)

func TestDependencyIssueId(t *testing.T) {
	tests := []struct {
		status modreg.DepStatus
		want   issue.Id
		ok     bool
	}{
		{modreg.StatusNotFound, issue.DependencyNotFoundId, true},
		{modreg.StatusInvalidVersion, issue.DependencyVersionId, true},
		{modreg.StatusRecursive, issue.DependencyCycleId, true},
		{modreg.StatusValid, 0, false},
	}
	for _, tt := range tests {
		id, ok := dependencyIssueId(tt.status)
		if id != tt.want || ok != tt.ok {
			t.Errorf("dependencyIssueId(%v) = (%v, %v), want (%v, %v)",
				tt.status, id, ok, tt.want, tt.ok)
		}
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	err := &ExitError{Code: 2, Err: inner}

	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want the wrapped message", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is must reach the wrapped error")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("bare Error() = %q", bare.Error())
	}
}

func TestSourceFor(t *testing.T) {
	if _, ok := sourceFor("mods/pack.modpkg").(modsrc.ArchiveSource); !ok {
		t.Error("archive extension must select the archive source")
	}
	if _, ok := sourceFor("mods/PACK.MODPKG").(modsrc.ArchiveSource); !ok {
		t.Error("extension match must be case-insensitive")
	}
	if _, ok := sourceFor("mods/plain").(modsrc.DirSource); !ok {
		t.Error("a bare path must select the directory source")
	}
}

func TestFileInjector(t *testing.T) {
	root := t.TempDir()
	inject := fileInjector(root)

	if err := inject("deep/nested/file.png", []byte("px")); err != nil {
		t.Fatalf("inject: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "deep", "nested", "file.png"))
	if err != nil {
		t.Fatalf("read injected asset: %v", err)
	}
	if string(data) != "px" {
		t.Errorf("content = %q, want px", data)
	}
}

func TestLoggingHost_Counts(t *testing.T) {
	host := &loggingHost{logger: newLogger()}

	host.AddComponent("a")
	host.AddComponent("b")
	if err := host.Initialize("a"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	host.RemoveComponent("b")

	if host.count != 1 {
		t.Errorf("count = %d, want 1", host.count)
	}
}
