// SPDX-License-Identifier: MPL-2.0

package modreg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"modhost/pkg/component"
	"modhost/pkg/modsrc"
)

// Options configures a Registry. The mods directory is always explicit;
// there is no default derived from the process location.
type Options struct {
	// ModsDir is the root containing mod subdirectories and .modpkg files.
	ModsDir string

	// HostVersion is the version reported for host-loader dependencies.
	HostVersion string

	// Logger receives per-candidate discovery outcomes. Optional.
	Logger *log.Logger
}

// Registry owns the discovered mods, keyed by source entry name. Mods are
// added only during Discover and never removed afterwards; resolution is
// idempotent and safe to repeat from a single goroutine.
type Registry struct {
	modsDir  string
	resolver *Resolver
	logger   *log.Logger

	mods  map[string]*Mod
	order []string
}

// New creates an empty registry.
func New(opts Options) (*Registry, error) {
	if opts.ModsDir == "" {
		return nil, errors.New("modreg: mods directory must be configured")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return &Registry{
		modsDir:  opts.ModsDir,
		resolver: NewResolver(opts.HostVersion),
		logger:   logger.WithPrefix("mods"),
		mods:     make(map[string]*Mod),
	}, nil
}

// Discover enumerates the mods root: each subdirectory is a directory-mod
// candidate, each *.modpkg file an archive-mod candidate. Failed candidates
// are logged and skipped; no candidate failure aborts the pass. A missing
// root means nothing to load, not an error.
func (reg *Registry) Discover() error {
	entries, err := os.ReadDir(reg.modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			reg.logger.Debug("mods directory absent, nothing to load", "dir", reg.modsDir)
			return nil
		}
		return fmt.Errorf("read mods directory %s: %w", reg.modsDir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(reg.modsDir, entry.Name())

		var (
			src  modsrc.Source
			name string
		)
		switch {
		case entry.IsDir():
			src = modsrc.DirSource{}
			name = entry.Name()
		case strings.EqualFold(filepath.Ext(entry.Name()), modsrc.ArchiveExt):
			src = modsrc.ArchiveSource{}
			name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		default:
			continue
		}

		bundle, err := src.Load(path)
		if err != nil {
			if errors.Is(err, modsrc.ErrNotFound) {
				continue
			}
			reg.logger.Warn("skipping mod candidate", "candidate", entry.Name(), "err", err)
			continue
		}

		if prev, ok := reg.mods[name]; ok {
			reg.logger.Warn("duplicate mod identity, keeping first",
				"candidate", entry.Name(), "kept", prev.SourcePath)
			continue
		}

		reg.mods[name] = NewMod(bundle, path)
		reg.order = append(reg.order, name)
		reg.logger.Info("loaded mod",
			"name", bundle.Info.Name,
			"version", bundle.Info.Version,
			"assets", len(bundle.Assets),
			"code", bundle.IsCodeMod())
	}

	sort.Strings(reg.order)
	return nil
}

// ResolveAll resolves dependencies for every held mod, in sorted identity
// order so cycle verdicts are deterministic across runs.
func (reg *Registry) ResolveAll() {
	all := reg.Mods()
	for _, m := range all {
		deps := reg.resolver.Resolve(m, all)
		for _, dep := range deps {
			if dep.Status != StatusValid {
				reg.logger.Warn("dependency unsatisfied",
					"mod", m.Name(),
					"requires", dep.Declaration.Name,
					"minimum", dep.Declaration.MinimumVersion,
					"detected", dep.DetectedVersion,
					"status", dep.Status.String())
			}
		}
	}
}

// Mods returns all held mods in sorted identity order.
func (reg *Registry) Mods() []*Mod {
	mods := make([]*Mod, 0, len(reg.mods))
	for _, name := range reg.order {
		mods = append(mods, reg.mods[name])
	}
	return mods
}

// Get returns the mod with the given source identity, or nil.
func (reg *Registry) Get(name string) *Mod {
	return reg.mods[name]
}

// Len returns the number of held mods.
func (reg *Registry) Len() int {
	return len(reg.mods)
}

// Resolve computes (or returns the cached) dependency verdicts for m.
func (reg *Registry) Resolve(m *Mod) []ResolvedDependency {
	return reg.resolver.Resolve(m, reg.Mods())
}

// Valid reports whether every dependency of m is satisfied.
func (reg *Registry) Valid(m *Mod) bool {
	return reg.resolver.Valid(m, reg.Mods())
}

// InjectAssets feeds every asset of every valid mod to inj, one call per
// entry, keys in sorted order within each mod. Invalid mods are skipped
// and reported via the returned count of skipped mods.
func (reg *Registry) InjectAssets(inj component.AssetInjector) (skipped int, err error) {
	for _, m := range reg.Mods() {
		if !reg.Valid(m) {
			reg.logger.Warn("refusing to inject assets of invalid mod", "mod", m.Name())
			skipped++
			continue
		}

		keys := make([]string, 0, len(m.Assets))
		for key := range m.Assets {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := inj.Inject(key, m.Assets[key]); err != nil {
				return skipped, fmt.Errorf("inject %s from %s: %w", key, m.Name(), err)
			}
		}
	}
	return skipped, nil
}

// StartComponents loads the component factories of every valid code mod,
// constructs one instance per factory with the host application handle, and
// registers each instance with the host. Invalid mods are skipped.
func (reg *Registry) StartComponents(host component.Host, handle any) error {
	for _, m := range reg.Mods() {
		if !m.IsCodeMod() {
			continue
		}
		if !reg.Valid(m) {
			reg.logger.Warn("refusing to start components of invalid mod", "mod", m.Name())
			continue
		}

		factories, err := component.LoadFactories(m.Name(), m.Library)
		if err != nil {
			return fmt.Errorf("load components of %s: %w", m.Name(), err)
		}

		for _, factory := range factories {
			instance, err := factory.New(handle)
			if err != nil {
				return fmt.Errorf("construct component %s of %s: %w", factory.Capability, m.Name(), err)
			}
			host.AddComponent(instance)
			if err := host.Initialize(instance); err != nil {
				host.RemoveComponent(instance)
				return fmt.Errorf("initialize component %s of %s: %w", factory.Capability, m.Name(), err)
			}
			reg.logger.Info("component started", "mod", m.Name(), "capability", factory.Capability)
		}
	}
	return nil
}
