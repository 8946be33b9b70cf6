// Package render turns bound fields into markup. A Renderer produces the
// fragment for one field; forms concatenate fragments in declaration order
// and append hidden inputs.
package render

import (
	"strings"

	"github.com/goliatone/go-modelform/pkg/field"
)

// Renderer converts one bound field into an HTML fragment.
type Renderer interface {
	Name() string
	RenderField(b *field.Bound) (string, error)
}

// Func adapts a plain function to Renderer.
type Func struct {
	ID string
	Fn func(b *field.Bound) string
}

// Name implements Renderer.
func (f Func) Name() string { return f.ID }

// RenderField implements Renderer.
func (f Func) RenderField(b *field.Bound) (string, error) {
	if f.Fn == nil || b == nil {
		return "", nil
	}
	return f.Fn(b), nil
}

// Built-in wrappers around the field's full markup.
var (
	Div Renderer = Func{ID: "div", Fn: func(b *field.Bound) string { return b.AsDiv() }}
	P   Renderer = Func{ID: "p", Fn: func(b *field.Bound) string { return b.AsP() }}
)

// Fields renders every bound field with r (Div when nil) and appends the
// hidden inputs.
func Fields(r Renderer, fields []*field.Bound, hidden ...HiddenField) (string, error) {
	if r == nil {
		r = Div
	}
	var b strings.Builder
	for _, bound := range fields {
		html, err := r.RenderField(bound)
		if err != nil {
			return "", err
		}
		b.WriteString(html)
	}
	b.WriteString(HiddenInputs(hidden...))
	return b.String(), nil
}
