// SPDX-License-Identifier: MPL-2.0

package component

import (
	"strings"
	"testing"
)

const greeterLibrary = `package main

type Greeter struct {
	Prefix string
}

func (g *Greeter) Greet(name string) string {
	return g.Prefix + name
}

func Components() []map[string]any {
	return []map[string]any{
		{
			"capability": "greeter",
			"new": func(handle any) (any, error) {
				return &Greeter{Prefix: "hello "}, nil
			},
		},
	}
}
`

func TestLoadFactories(t *testing.T) {
	t.Parallel()

	factories, err := LoadFactories("greetmod", []byte(greeterLibrary))
	if err != nil {
		t.Fatalf("LoadFactories: %v", err)
	}
	if len(factories) != 1 {
		t.Fatalf("got %d factories, want 1", len(factories))
	}
	if factories[0].Capability != "greeter" {
		t.Errorf("capability = %q, want %q", factories[0].Capability, "greeter")
	}

	instance, err := factories[0].New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	type greeter interface {
		Greet(name string) string
	}
	g, ok := instance.(greeter)
	if !ok {
		t.Fatalf("instance %T does not greet", instance)
	}
	if got := g.Greet("world"); got != "hello world" {
		t.Errorf("Greet = %q, want %q", got, "hello world")
	}
}

func TestLoadFactories_ConstructorReceivesHandle(t *testing.T) {
	t.Parallel()

	src := `package main

func Components() []map[string]any {
	return []map[string]any{
		{
			"capability": "echo",
			"new": func(handle any) (any, error) {
				return handle, nil
			},
		},
	}
}
`
	factories, err := LoadFactories("echomod", []byte(src))
	if err != nil {
		t.Fatalf("LoadFactories: %v", err)
	}

	handle := "the host handle"
	instance, err := factories[0].New(handle)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if instance != handle {
		t.Errorf("instance = %v, want the handle passed through", instance)
	}

	// Nil handle must still be callable.
	if _, err := factories[0].New(nil); err != nil {
		t.Errorf("New(nil): %v", err)
	}
}

func TestLoadFactories_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "empty source",
			src:     "   \n",
			wantErr: "empty",
		},
		{
			name:    "syntax error",
			src:     "package main\n\nfunc Components( {",
			wantErr: "interpret",
		},
		{
			name:    "missing registration function",
			src:     "package main\n\nfunc Other() {}\n",
			wantErr: "must define",
		},
		{
			name: "missing capability",
			src: `package main

func Components() []map[string]any {
	return []map[string]any{
		{"new": func(handle any) (any, error) { return nil, nil }},
	}
}
`,
			wantErr: "capability",
		},
		{
			name: "missing constructor",
			src: `package main

func Components() []map[string]any {
	return []map[string]any{
		{"capability": "orphan"},
	}
}
`,
			wantErr: "constructor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadFactories("broken", []byte(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
