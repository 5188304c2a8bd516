// SPDX-License-Identifier: MPL-2.0

package modreg

import (
	"modhost/pkg/modinfo"
	"modhost/pkg/modver"
)

// DepStatus classifies the outcome of checking one declared dependency
// against the current registry state.
type DepStatus int

const (
	// StatusValid means the dependency is satisfied.
	StatusValid DepStatus = iota

	// StatusInvalidVersion means the target exists but is older than the
	// declared minimum version.
	StatusInvalidVersion

	// StatusNotFound means no mod with the declared name is loaded, or
	// the target itself has unsatisfied dependencies (propagated
	// invalidity shares this kind).
	StatusNotFound

	// StatusRecursive means the dependency participates in a cycle:
	// either the target declares a dependency straight back, or following
	// the chain re-enters a mod already on the resolution path.
	StatusRecursive
)

// String returns a short human-readable status name.
func (s DepStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalidVersion:
		return "version too old"
	case StatusNotFound:
		return "not found"
	case StatusRecursive:
		return "circular dependency"
	default:
		return "unknown"
	}
}

// ResolvedDependency is the derived per-dependency verdict.
type ResolvedDependency struct {
	// Declaration is the static requirement from the descriptor.
	Declaration modinfo.Dependency

	// Target is the mod the declaration resolved to. Nil for missing
	// targets and for the host-loader dependency, which is never looked
	// up in the registry.
	Target *Mod

	// DetectedVersion is the version the floor was checked against: the
	// target's declared version, or the host's own version for the
	// host-loader case. Empty when no target was found.
	DetectedVersion string

	// Status is the verdict.
	Status DepStatus
}

// Resolver computes dependency verdicts for mods against a set of loaded
// mods. HostVersion is the version reported for the reserved host-loader
// dependency name.
type Resolver struct {
	HostVersion string
}

// NewResolver creates a resolver with the given host version.
func NewResolver(hostVersion string) *Resolver {
	return &Resolver{HostVersion: hostVersion}
}

// Resolve computes the verdict for each of m's declared dependencies, in
// declaration order, looking up targets by exact name among all. Results
// are cached on the mod; a fresh cache is returned as-is, which makes
// repeated resolution on an unchanged registry idempotent.
func (r *Resolver) Resolve(m *Mod, all []*Mod) []ResolvedDependency {
	return r.resolve(m, all, map[*Mod]bool{m: true})
}

// Valid reports whether every one of m's dependencies resolves to
// StatusValid. A mod with no declared dependencies is trivially valid.
func (r *Resolver) Valid(m *Mod, all []*Mod) bool {
	return r.valid(m, all, map[*Mod]bool{m: true})
}

// resolve carries the set of mods currently on the resolution path so that
// cycles of any length terminate instead of recursing forever.
func (r *Resolver) resolve(m *Mod, all []*Mod, visiting map[*Mod]bool) []ResolvedDependency {
	if deps, ok := m.freshDependencies(); ok {
		return deps
	}

	deps := make([]ResolvedDependency, 0, len(m.Info.Dependencies))
	for _, decl := range m.Info.Dependencies {
		deps = append(deps, r.resolveOne(m, decl, all, visiting))
	}

	m.storeDependencies(deps)
	return deps
}

func (r *Resolver) resolveOne(m *Mod, decl modinfo.Dependency, all []*Mod, visiting map[*Mod]bool) ResolvedDependency {
	rd := ResolvedDependency{Declaration: decl, Status: StatusValid}

	if decl.Name == modinfo.HostLoaderName {
		rd.DetectedVersion = r.HostVersion
		if modver.Less(r.HostVersion, decl.MinimumVersion) {
			rd.Status = StatusInvalidVersion
		}
		return rd
	}

	target := findByName(all, decl.Name)
	if target == nil {
		rd.Status = StatusNotFound
		return rd
	}
	rd.Target = target
	rd.DetectedVersion = target.Info.Version

	switch {
	// Cycle detection outranks the version floor: a mutual dependency is
	// recursive even when the target is also below the declared minimum.
	case target.Info.DependsOn(m.Name()):
		// Direct mutual dependency, reported symmetrically on both mods.
		rd.Status = StatusRecursive

	case visiting[target]:
		// Longer cycle closing back onto the resolution path.
		rd.Status = StatusRecursive

	case modver.Less(target.Info.Version, decl.MinimumVersion):
		rd.Status = StatusInvalidVersion

	default:
		visiting[target] = true
		if !r.valid(target, all, visiting) {
			// Propagated invalidity reuses the not-found kind.
			rd.Status = StatusNotFound
		}
		delete(visiting, target)
	}

	return rd
}

func (r *Resolver) valid(m *Mod, all []*Mod, visiting map[*Mod]bool) bool {
	for _, dep := range r.resolve(m, all, visiting) {
		if dep.Status != StatusValid {
			return false
		}
	}
	return true
}

// findByName returns the first mod whose declared name matches exactly.
// Name comparison is case-sensitive.
func findByName(all []*Mod, name string) *Mod {
	for _, m := range all {
		if m.Info.Name == name {
			return m
		}
	}
	return nil
}
