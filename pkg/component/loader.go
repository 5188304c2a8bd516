// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// registrationFuncName is the symbol every library must export.
const registrationFuncName = "Components"

// LoadFactories interprets a library source and collects its registered
// component factories. The library must define
//
//	func Components() []map[string]any
//
// where each entry carries "capability" (string) and "new" (a function
// taking the host handle, or nothing, and returning the component instance
// with an optional trailing error). name is used in error messages only.
func LoadFactories(name string, src []byte) ([]Factory, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, fmt.Errorf("component: library of %s is empty", name)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("component: interpreter setup: %w", err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("component: interpret library of %s: %w", name, err)
	}

	fnValue, err := i.Eval(registrationFuncName)
	if err != nil {
		return nil, fmt.Errorf("component: library of %s must define %s() []map[string]any: %w",
			name, registrationFuncName, err)
	}

	entries, err := callRegistration(fnValue)
	if err != nil {
		return nil, fmt.Errorf("component: library of %s: %w", name, err)
	}

	factories := make([]Factory, 0, len(entries))
	for idx, entry := range entries {
		factory, err := adaptEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("component: library of %s entry[%d]: %w", name, idx, err)
		}
		factories = append(factories, factory)
	}
	return factories, nil
}

// callRegistration invokes the exported registration function via reflect;
// values crossing the interpreter boundary carry no static types.
func callRegistration(value reflect.Value) ([]map[string]any, error) {
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", registrationFuncName)
	}

	results := value.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return []map[string]any with an optional error", registrationFuncName)
	}
	if len(results) == 2 && !results[1].IsNil() {
		if e, ok := results[1].Interface().(error); ok {
			return nil, e
		}
		return nil, fmt.Errorf("%s returned a non-error second value", registrationFuncName)
	}

	raw := results[0]
	if entries, ok := raw.Interface().([]map[string]any); ok {
		return entries, nil
	}
	if raw.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%s must return a slice of map[string]any", registrationFuncName)
	}
	entries := make([]map[string]any, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		m, ok := raw.Index(i).Interface().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s result[%d] is not map[string]any", registrationFuncName, i)
		}
		entries[i] = m
	}
	return entries, nil
}

// adaptEntry converts one registration map into a Factory.
func adaptEntry(entry map[string]any) (Factory, error) {
	capability, ok := entry["capability"].(string)
	if !ok || capability == "" {
		return Factory{}, fmt.Errorf("missing or empty capability tag")
	}

	ctor := reflect.ValueOf(entry["new"])
	if !ctor.IsValid() || ctor.Kind() != reflect.Func {
		return Factory{}, fmt.Errorf("capability %q has no constructor function", capability)
	}
	ctorType := ctor.Type()
	if ctorType.NumIn() > 1 || ctorType.NumOut() == 0 || ctorType.NumOut() > 2 {
		return Factory{}, fmt.Errorf("capability %q constructor must take at most the host handle and return the instance with an optional error", capability)
	}

	return Factory{
		Capability: capability,
		New: func(handle any) (any, error) {
			var args []reflect.Value
			if ctorType.NumIn() == 1 {
				if handle == nil {
					args = []reflect.Value{reflect.Zero(ctorType.In(0))}
				} else {
					args = []reflect.Value{reflect.ValueOf(handle)}
				}
			}

			results := ctor.Call(args)
			if len(results) == 2 && !results[1].IsNil() {
				if e, ok := results[1].Interface().(error); ok {
					return nil, e
				}
				return nil, fmt.Errorf("constructor of %q returned a non-error second value", capability)
			}
			return results[0].Interface(), nil
		},
	}, nil
}
