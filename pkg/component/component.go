// SPDX-License-Identifier: MPL-2.0

// Package component defines the narrow contracts between the mod core and
// the host application, plus the loader that turns a code mod's library
// into component factories.
//
// The host consumes components through explicit registration: a library
// exports a Components() function listing capability-tagged constructors.
// Nothing is discovered by introspecting compiled types.
package component

// AssetInjector accepts one resolved asset at a time. The registry calls
// it once per asset entry after discovery and resolution complete.
type AssetInjector interface {
	Inject(path string, data []byte) error
}

// Host receives component instances constructed from loaded libraries.
// Component behavior is entirely the host's concern.
type Host interface {
	AddComponent(c any)
	RemoveComponent(c any)
	Initialize(c any) error
}

// Factory is one registered component constructor from a loaded library.
type Factory struct {
	// Capability tags what the component provides.
	Capability string

	// New constructs one instance. The argument is the host application
	// handle, passed through verbatim.
	New func(handle any) (any, error)
}

// InjectorFunc adapts a function to AssetInjector.
type InjectorFunc func(path string, data []byte) error

// Inject implements AssetInjector.
func (f InjectorFunc) Inject(path string, data []byte) error {
	return f(path, data)
}
