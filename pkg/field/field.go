// Package field wraps one schema property: it resolves the property's widget,
// parses submitted values into typed values, runs the property's validators
// and renders the label, help text, error and input fragments.
package field

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-modelform/internal/markup"
	"github.com/goliatone/go-modelform/pkg/validate"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// Messages recorded on bound fields.
const (
	RequiredMessage = "This field is required."
	InvalidMessage  = "Enter a valid value."
)

var (
	// ErrNameRequired reports a spec without a name.
	ErrNameRequired = errors.New("field: name is required")
	// ErrUnknownKind reports a spec whose kind is missing or not declared.
	ErrUnknownKind = errors.New("field: unknown kind")
)

// Spec describes a field. It is copied on construction; later changes to the
// caller's value do not affect the field.
type Spec struct {
	Name string
	Kind Kind
	// Type is the declared schema type name the kind was resolved from.
	Type     string
	Required bool
	// Label defaults to the humanised name.
	Label    string
	HelpText string
	// Validators run in order after the required check.
	Validators []validate.Validator

	// Widget names an explicit widget kind. Empty selects one from the
	// registry.
	Widget   string
	Classes  []string
	Attrs    map[string]string
	Choices  []widgets.Choice
	Multiple bool
	Rows     int
	Cols     int
	SiteKey  string
}

type config struct {
	registry *widgets.Registry
}

// Option customises field construction.
type Option func(*config)

// WithRegistry selects widgets through reg instead of the default registry.
func WithRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

var defaultRegistry = widgets.NewRegistry()

// Field is an immutable field definition. Bind it to obtain a value that can
// be validated and rendered.
type Field struct {
	spec   Spec
	widget widgets.Widget
}

// New validates spec and resolves its widget.
func New(spec Spec, opts ...Option) (*Field, error) {
	cfg := config{registry: defaultRegistry}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return nil, ErrNameRequired
	}
	if !spec.Kind.Valid() {
		return nil, fmt.Errorf("%w %q for %q", ErrUnknownKind, spec.Kind, spec.Name)
	}
	spec.Validators = slices.Clone(spec.Validators)
	spec.Classes = slices.Clone(spec.Classes)
	spec.Attrs = maps.Clone(spec.Attrs)
	spec.Choices = slices.Clone(spec.Choices)

	kind := cfg.registry.Resolve(widgets.Hint{
		FieldKind: string(spec.Kind),
		Widget:    spec.Widget,
		Choices:   len(spec.Choices),
		Multiple:  spec.Multiple,
	})
	widget, err := widgets.New(kind, widgets.Options{
		Classes: spec.Classes,
		Attrs:   spec.Attrs,
		Choices: spec.Choices,
		Rows:    spec.Rows,
		Cols:    spec.Cols,
		SiteKey: spec.SiteKey,
	})
	if err != nil {
		return nil, fmt.Errorf("field: %s: %w", spec.Name, err)
	}
	return &Field{spec: spec, widget: widget}, nil
}

// Name returns the field name.
func (f *Field) Name() string { return f.spec.Name }

// Kind returns the field kind.
func (f *Field) Kind() Kind { return f.spec.Kind }

// Required reports whether an empty submission is rejected.
func (f *Field) Required() bool { return f.spec.Required }

// Widget returns the resolved widget.
func (f *Field) Widget() widgets.Widget { return f.widget }

// Label returns the display label.
func (f *Field) Label() string {
	if label := strings.TrimSpace(f.spec.Label); label != "" {
		return label
	}
	return markup.Humanize(f.spec.Name)
}

// HelpText returns the raw, unsanitised help text.
func (f *Field) HelpText() string { return f.spec.HelpText }

// Spec returns a copy of the field definition.
func (f *Field) Spec() Spec {
	spec := f.spec
	spec.Validators = slices.Clone(spec.Validators)
	spec.Classes = slices.Clone(spec.Classes)
	spec.Attrs = maps.Clone(spec.Attrs)
	spec.Choices = slices.Clone(spec.Choices)
	return spec
}

// Bind returns a fresh bound copy holding raw and its parsed value. The field
// itself is never modified.
func (f *Field) Bind(raw any) *Bound {
	var value any
	if f.spec.Multiple {
		value = parseList(f.spec.Kind, raw)
	} else {
		value = Parse(f.spec.Kind, raw)
	}
	return &Bound{field: f, raw: raw, value: value}
}
