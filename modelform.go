// Package modelform builds HTML forms from data model schemas. A schema is
// scanned into a form of typed fields; submissions are bound to a copy of
// the form, validated concurrently and rendered back as HTML.
//
// The helpers here cover the common entry points. The building blocks live
// in pkg/schema, pkg/form, pkg/field, pkg/widgets, pkg/validate and
// pkg/render.
package modelform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/openapi"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/schema"
)

// FromSchema scans s into a form.
func FromSchema(s schema.Schema, opts ...form.Option) (*form.Form, error) {
	return form.New(s, opts...)
}

// FromYAML decodes a YAML or JSON schema document and scans it into a form.
func FromYAML(raw []byte, opts ...form.Option) (*form.Form, error) {
	s, err := schema.LoadYAML(raw)
	if err != nil {
		return nil, err
	}
	return form.New(s, opts...)
}

// FromFile reads a schema file and scans it into a form.
func FromFile(path string, opts ...form.Option) (*form.Form, error) {
	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return form.New(s, opts...)
}

// FromOpenAPI derives a form from the request body of operationID. Nested
// object properties and patterns Go cannot compile are logged and skipped.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string, opts ...form.Option) (*form.Form, error) {
	s, err := openapi.SchemaForOperation(ctx, raw, operationID, openapi.WithLogger(form.LoggerFrom(opts...)))
	if err != nil {
		return nil, err
	}
	return form.New(s, append([]form.Option{form.WithSkipNested()}, opts...)...)
}

// Renderers returns the div, p and template renderers keyed by name.
// Template options configure the template renderer.
func Renderers(opts ...render.TemplateOption) (render.Set, error) {
	tpl, err := render.NewTemplate(opts...)
	if err != nil {
		return nil, fmt.Errorf("modelform: template renderer: %w", err)
	}
	return render.NewSet(render.Div, render.P, tpl)
}
