// SPDX-License-Identifier: MPL-2.0

package modreg

import (
	"reflect"
	"testing"

	"modhost/pkg/modinfo"
	"modhost/pkg/modsrc"
)

func newTestMod(name, version string, deps ...modinfo.Dependency) *Mod {
	return NewMod(&modsrc.Bundle{
		Info: &modinfo.Modinfo{
			Name:         name,
			Version:      version,
			Dependencies: deps,
		},
		Assets: map[string][]byte{"texture.png": []byte("px")},
	}, "/mods/"+name)
}

func dep(name, minimum string) modinfo.Dependency {
	return modinfo.Dependency{Name: name, MinimumVersion: minimum}
}

func TestResolver_NoDependencies(t *testing.T) {
	t.Parallel()

	r := NewResolver("1.0.0")
	m := newTestMod("solo", "1.0.0")

	if deps := r.Resolve(m, []*Mod{m}); len(deps) != 0 {
		t.Errorf("got %d verdicts, want 0", len(deps))
	}
	if !r.Valid(m, []*Mod{m}) {
		t.Error("mod without dependencies must be valid")
	}
}

func TestResolver_SatisfiedChain(t *testing.T) {
	t.Parallel()

	base := newTestMod("base", "2.1.0")
	mid := newTestMod("mid", "1.0.0", dep("base", "2.0.0"))
	top := newTestMod("top", "0.5.0", dep("mid", "1.0.0"))
	all := []*Mod{base, mid, top}

	r := NewResolver("1.0.0")
	deps := r.Resolve(top, all)
	if len(deps) != 1 {
		t.Fatalf("got %d verdicts, want 1", len(deps))
	}
	if deps[0].Status != StatusValid {
		t.Errorf("status = %v, want valid", deps[0].Status)
	}
	if deps[0].Target != mid {
		t.Errorf("target = %v, want mid", deps[0].Target)
	}
	if deps[0].DetectedVersion != "1.0.0" {
		t.Errorf("detected = %q, want 1.0.0", deps[0].DetectedVersion)
	}
	if !r.Valid(top, all) {
		t.Error("top must be valid")
	}
}

func TestResolver_MissingTarget(t *testing.T) {
	t.Parallel()

	m := newTestMod("lonely", "1.0.0", dep("ghost", "1.0.0"))
	r := NewResolver("1.0.0")

	deps := r.Resolve(m, []*Mod{m})
	if deps[0].Status != StatusNotFound {
		t.Errorf("status = %v, want not found", deps[0].Status)
	}
	if deps[0].Target != nil {
		t.Errorf("target = %v, want nil", deps[0].Target)
	}
	if deps[0].DetectedVersion != "" {
		t.Errorf("detected = %q, want empty", deps[0].DetectedVersion)
	}
	if r.Valid(m, []*Mod{m}) {
		t.Error("mod with a missing dependency must be invalid")
	}
}

func TestResolver_NameLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	target := newTestMod("Base", "1.0.0")
	m := newTestMod("top", "1.0.0", dep("base", "1.0.0"))
	r := NewResolver("1.0.0")

	deps := r.Resolve(m, []*Mod{target, m})
	if deps[0].Status != StatusNotFound {
		t.Errorf("status = %v, want not found for differently-cased name", deps[0].Status)
	}
}

func TestResolver_VersionFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		targetVer  string
		minimum    string
		wantStatus DepStatus
	}{
		{"exactly at floor", "1.2.0", "1.2.0", StatusValid},
		{"above floor", "1.10.0", "1.9.0", StatusValid},
		{"below floor", "1.2.0", "1.2.1", StatusInvalidVersion},
		{"shorter is older", "1.2", "1.2.0", StatusInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := newTestMod("base", tt.targetVer)
			m := newTestMod("top", "1.0.0", dep("base", tt.minimum))
			r := NewResolver("1.0.0")

			deps := r.Resolve(m, []*Mod{target, m})
			if deps[0].Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", deps[0].Status, tt.wantStatus)
			}
		})
	}
}

func TestResolver_HostLoaderDependency(t *testing.T) {
	t.Parallel()

	t.Run("satisfied against host version", func(t *testing.T) {
		t.Parallel()

		m := newTestMod("needy", "1.0.0", dep(modinfo.HostLoaderName, "0.9.0"))
		r := NewResolver("1.0.0")

		deps := r.Resolve(m, []*Mod{m})
		if deps[0].Status != StatusValid {
			t.Errorf("status = %v, want valid", deps[0].Status)
		}
		if deps[0].DetectedVersion != "1.0.0" {
			t.Errorf("detected = %q, want host version", deps[0].DetectedVersion)
		}
		if deps[0].Target != nil {
			t.Error("host-loader dependency must not resolve to a mod")
		}
	})

	t.Run("host too old", func(t *testing.T) {
		t.Parallel()

		m := newTestMod("needy", "1.0.0", dep(modinfo.HostLoaderName, "2.0.0"))
		r := NewResolver("1.0.0")

		deps := r.Resolve(m, []*Mod{m})
		if deps[0].Status != StatusInvalidVersion {
			t.Errorf("status = %v, want version too old", deps[0].Status)
		}
	})

	t.Run("never shadowed by a mod of the same name", func(t *testing.T) {
		t.Parallel()

		impostor := newTestMod(modinfo.HostLoaderName, "9.0.0")
		m := newTestMod("needy", "1.0.0", dep(modinfo.HostLoaderName, "2.0.0"))
		r := NewResolver("1.0.0")

		deps := r.Resolve(m, []*Mod{impostor, m})
		if deps[0].Status != StatusInvalidVersion {
			t.Errorf("status = %v, want version too old against the host itself", deps[0].Status)
		}
		if deps[0].Target != nil {
			t.Error("host-loader lookup must bypass the registry")
		}
	})
}

func TestResolver_MutualDependency(t *testing.T) {
	t.Parallel()

	a := newTestMod("a", "1.0.0", dep("b", "1.0.0"))
	b := newTestMod("b", "1.0.0", dep("a", "1.0.0"))
	all := []*Mod{a, b}
	r := NewResolver("1.0.0")

	// Both sides report the cycle, whichever is resolved first.
	if got := r.Resolve(a, all)[0].Status; got != StatusRecursive {
		t.Errorf("a->b status = %v, want circular", got)
	}
	if got := r.Resolve(b, all)[0].Status; got != StatusRecursive {
		t.Errorf("b->a status = %v, want circular", got)
	}
	if r.Valid(a, all) || r.Valid(b, all) {
		t.Error("mutually dependent mods must both be invalid")
	}
}

func TestResolver_MutualDependencyOutranksVersionFloor(t *testing.T) {
	t.Parallel()

	// b sits below a's floor, but the mutual dependency is what makes the
	// pair unloadable, so both sides still report the cycle.
	a := newTestMod("a", "1.0.0", dep("b", "2.0.0"))
	b := newTestMod("b", "1.0.0", dep("a", "1.0.0"))
	all := []*Mod{a, b}
	r := NewResolver("1.0.0")

	if got := r.Resolve(a, all)[0].Status; got != StatusRecursive {
		t.Errorf("a->b status = %v, want circular", got)
	}
	if got := r.Resolve(b, all)[0].Status; got != StatusRecursive {
		t.Errorf("b->a status = %v, want circular", got)
	}
}

func TestResolver_ThreeCycleTerminates(t *testing.T) {
	t.Parallel()

	a := newTestMod("a", "1.0.0", dep("b", "1.0.0"))
	b := newTestMod("b", "1.0.0", dep("c", "1.0.0"))
	c := newTestMod("c", "1.0.0", dep("a", "1.0.0"))
	all := []*Mod{a, b, c}
	r := NewResolver("1.0.0")

	// Resolution must return rather than recurse forever, and every member
	// of the cycle ends up invalid.
	deps := r.Resolve(a, all)
	if len(deps) != 1 {
		t.Fatalf("got %d verdicts, want 1", len(deps))
	}
	if deps[0].Status == StatusValid {
		t.Error("a cycle member must not be valid")
	}
	for _, m := range all {
		m.Invalidate()
	}
	for _, m := range all {
		if r.Valid(m, all) {
			t.Errorf("%s is valid inside a cycle", m.Name())
		}
	}
}

func TestResolver_InvalidityPropagates(t *testing.T) {
	t.Parallel()

	// base depends on a ghost, so mid is transitively invalid too.
	base := newTestMod("base", "1.0.0", dep("ghost", "1.0.0"))
	mid := newTestMod("mid", "1.0.0", dep("base", "1.0.0"))
	all := []*Mod{base, mid}
	r := NewResolver("1.0.0")

	deps := r.Resolve(mid, all)
	if deps[0].Status != StatusNotFound {
		t.Errorf("status = %v, want not found for transitively broken target", deps[0].Status)
	}
	if deps[0].Target != base {
		t.Error("target must still point at the located mod")
	}
}

func TestResolver_Idempotent(t *testing.T) {
	t.Parallel()

	base := newTestMod("base", "1.0.0")
	m := newTestMod("top", "1.0.0", dep("base", "1.0.0"), dep("ghost", "1.0.0"))
	all := []*Mod{base, m}
	r := NewResolver("1.0.0")

	first := r.Resolve(m, all)
	second := r.Resolve(m, all)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated resolution differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDepStatus_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status DepStatus
		want   string
	}{
		{StatusValid, "valid"},
		{StatusInvalidVersion, "version too old"},
		{StatusNotFound, "not found"},
		{StatusRecursive, "circular dependency"},
		{DepStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("DepStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
