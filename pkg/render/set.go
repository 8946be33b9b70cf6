package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownRenderer is returned by Lookup for names outside the set.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Set maps renderer names to renderers. It is read-only once built.
type Set map[string]Renderer

// NewSet keys renderers by Name. Nil renderers, empty names and duplicate
// names are rejected.
func NewSet(renderers ...Renderer) (Set, error) {
	set := make(Set, len(renderers))
	for _, r := range renderers {
		if r == nil {
			return nil, errors.New("render: nil renderer")
		}
		name := r.Name()
		if name == "" {
			return nil, errors.New("render: renderer name is required")
		}
		if _, dup := set[name]; dup {
			return nil, fmt.Errorf("render: renderer %q given twice", name)
		}
		set[name] = r
	}
	return set, nil
}

// Builtin returns the div and p renderers.
func Builtin() Set {
	return Set{Div.Name(): Div, P.Name(): P}
}

// Lookup returns the named renderer. An empty name selects div.
func (s Set) Lookup(name string) (Renderer, error) {
	if name == "" {
		name = Div.Name()
	}
	r, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, name, strings.Join(s.Names(), ", "))
	}
	return r, nil
}

// Names returns the renderer names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
