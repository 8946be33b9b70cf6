// Package form derives an HTML form from a schema. A Form is built once per
// schema and reused: Bind produces an independent BoundForm per submission,
// which is validated, inspected and rendered.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-modelform/pkg/field"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/schema"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

var (
	// ErrNestedProperty reports a dotted schema path.
	ErrNestedProperty = errors.New("form: nested properties are not supported")
	// ErrDuplicateField reports two fields with the same name.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrUnsupportedMethod reports a request method Handle cannot read.
	ErrUnsupportedMethod = errors.New("form: unsupported request method")
	// ErrUnsupportedInput reports an input shape Handle cannot read.
	ErrUnsupportedInput = errors.New("form: unsupported input")
)

// Form is an immutable, ordered set of fields. It is safe for concurrent use.
type Form struct {
	name         string
	fields       []*field.Field
	index        map[string]int
	fieldTimeout time.Duration
	maxMemory    int64
	logger       Logger
}

// New scans s and builds one field per property, then one per extra field.
// Properties whose type cannot be resolved are logged and skipped; nested
// properties and duplicate names fail construction.
func New(s schema.Schema, opts ...Option) (*Form, error) {
	cfg := config{
		logger:       StdLogger{},
		fieldTimeout: DefaultFieldTimeout,
		maxMemory:    DefaultMaxMemory,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	f := &Form{
		name:         s.Name,
		index:        make(map[string]int, len(s.Properties)+len(s.Fields)+len(cfg.fields)),
		fieldTimeout: cfg.fieldTimeout,
		maxMemory:    cfg.maxMemory,
		logger:       cfg.logger,
	}
	var fieldOpts []field.Option
	if cfg.registry != nil {
		fieldOpts = append(fieldOpts, field.WithRegistry(cfg.registry))
	}

	for _, prop := range s.Properties {
		if err := f.add(prop, false, cfg, fieldOpts); err != nil {
			return nil, err
		}
	}
	extras := append(append([]schema.Property(nil), s.Fields...), cfg.fields...)
	for _, prop := range extras {
		if err := f.add(prop, true, cfg, fieldOpts); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Form) add(prop schema.Property, extra bool, cfg config, opts []field.Option) error {
	path := strings.TrimSpace(prop.Path)
	if prop.Nested() {
		if cfg.skipNested {
			f.logger.Debug("form: skipping nested property", "form", f.name, "path", path)
			return nil
		}
		return fmt.Errorf("%w: %q", ErrNestedProperty, path)
	}
	if !prop.IsEditable() {
		f.logger.Debug("form: skipping read-only property", "form", f.name, "path", path)
		return nil
	}
	if extra && strings.TrimSpace(prop.Type) == "" {
		f.logger.Error("form: could not determine widget for custom field", "form", f.name, "field", path)
		return nil
	}
	kind, ok := field.ResolveKind(prop.Type, prop.ItemType)
	if !ok {
		f.logger.Error("form: could not determine widget for field", "form", f.name, "path", path, "type", prop.Type)
		return nil
	}
	if _, exists := f.index[path]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, path)
	}

	validators, err := prop.CompileValidators()
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	built, err := field.New(field.Spec{
		Name:       path,
		Kind:       kind,
		Type:       prop.Type,
		Required:   prop.Required,
		Label:      prop.Label,
		HelpText:   prop.HelpText,
		Validators: validators,
		Widget:     prop.Widget,
		Classes:    prop.Classes,
		Attrs:      prop.Attrs,
		Choices:    prop.Choices,
		Multiple:   prop.Multiple || prop.IsArray(),
		Rows:       prop.Rows,
		Cols:       prop.Cols,
		SiteKey:    prop.SiteKey,
	}, opts...)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	f.index[path] = len(f.fields)
	f.fields = append(f.fields, built)
	f.logger.Debug("form: field added", "form", f.name, "field", path, "kind", kind, "widget", built.Widget().Kind())
	return nil
}

// Name returns the schema name.
func (f *Form) Name() string { return f.name }

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*field.Field {
	return append([]*field.Field(nil), f.fields...)
}

// Field looks up a field by name.
func (f *Form) Field(name string) (*field.Field, bool) {
	idx, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.fields[idx], true
}

// Names returns the field names in declaration order.
func (f *Form) Names() []string {
	names := make([]string, len(f.fields))
	for i, fd := range f.fields {
		names[i] = fd.Name()
	}
	return names
}

// Bind binds data to every field. Keys without a matching field are
// ignored. The form itself is not modified.
func (f *Form) Bind(data Data) *BoundForm {
	bound := make([]*field.Bound, len(f.fields))
	for i, fd := range f.fields {
		bound[i] = fd.Bind(data[fd.Name()])
	}
	return &BoundForm{form: f, fields: bound}
}

// ToHTML renders the unbound form.
func (f *Form) ToHTML(r render.Renderer, hidden ...render.HiddenField) (string, error) {
	return f.Bind(nil).ToHTML(r, hidden...)
}

// WidgetKinds reports the widget chosen for each field, keyed by name.
func (f *Form) WidgetKinds() map[string]widgets.Kind {
	out := make(map[string]widgets.Kind, len(f.fields))
	for _, fd := range f.fields {
		out[fd.Name()] = fd.Widget().Kind()
	}
	return out
}
