// Package schema describes the data model a form is derived from: an ordered
// list of properties with their declared type names, presentation hints and
// validation rules. Schemas are built in code, decoded from YAML/JSON files,
// or derived from an OpenAPI operation (see pkg/openapi).
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-modelform/pkg/validate"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// Schema is a named, ordered set of properties. Fields lists extra fields
// that are not part of the stored model, such as a captcha or a password
// confirmation.
type Schema struct {
	Name       string     `json:"name" yaml:"name"`
	Properties []Property `json:"properties" yaml:"properties"`
	Fields     []Property `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Property is one schema path.
type Property struct {
	// Path is the property name. Dotted paths denote nested documents.
	Path string `json:"path" yaml:"path"`
	// Type is the declared type name ("String", "Number", "Array", ...).
	Type string `json:"type" yaml:"type"`
	// ItemType is the declared type of array items.
	ItemType string `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	// Editable defaults to true. Non-editable properties get no field.
	Editable *bool `json:"editable,omitempty" yaml:"editable,omitempty"`

	Widget   string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Classes  []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Choices  []widgets.Choice  `json:"choices,omitempty" yaml:"choices,omitempty"`
	Multiple bool              `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Rows     int               `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cols     int               `json:"cols,omitempty" yaml:"cols,omitempty"`
	SiteKey  string            `json:"siteKey,omitempty" yaml:"siteKey,omitempty"`

	// Rules are compiled into validators ahead of Validators.
	Rules      []validate.Rule      `json:"rules,omitempty" yaml:"rules,omitempty"`
	Validators []validate.Validator `json:"-" yaml:"-"`
}

// Nested reports whether the property addresses a sub-document.
func (p Property) Nested() bool {
	return strings.Contains(p.Path, ".")
}

// IsEditable reports whether the property should become a form field.
func (p Property) IsEditable() bool {
	return p.Editable == nil || *p.Editable
}

// IsArray reports whether the property is declared as a list.
func (p Property) IsArray() bool {
	return strings.TrimSpace(p.Type) == "Array"
}

// CompileValidators returns the rule validators followed by the programmatic
// ones.
func (p Property) CompileValidators() ([]validate.Validator, error) {
	compiled, err := validate.FromRules(p.Rules)
	if err != nil {
		return nil, fmt.Errorf("schema: property %q: %w", p.Path, err)
	}
	return append(compiled, p.Validators...), nil
}

// Property looks up a property by path.
func (s Schema) Property(path string) (Property, bool) {
	for _, prop := range s.Properties {
		if prop.Path == path {
			return prop, true
		}
	}
	return Property{}, false
}

// Paths returns the property paths in declaration order.
func (s Schema) Paths() []string {
	paths := make([]string, 0, len(s.Properties))
	for _, prop := range s.Properties {
		paths = append(paths, prop.Path)
	}
	return paths
}

// Clone returns a copy that shares no slices with s.
func (s Schema) Clone() Schema {
	out := s
	out.Properties = slices.Clone(s.Properties)
	out.Fields = slices.Clone(s.Fields)
	return out
}
