package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/schema"
	"github.com/goliatone/go-modelform/pkg/validate"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// Vendor extension keys read from property schemas.
const (
	WidgetExtension = "x-modelform-widget"
	HiddenExtension = "x-modelform-hidden"
)

var (
	// ErrOperationNotFound is returned when no operation carries the
	// requested operationId.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned for operations without a usable request
	// body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// preferred media types, in lookup order.
var mediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option customises schema conversion.
type Option func(*converter)

// WithLogger reports dropped constraints to logger.
func WithLogger(logger form.Logger) Option {
	return func(c *converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Operation summarises one operation of a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists the document's operations sorted by ID. Operations
// without an operationId are named "method:path".
func Operations(ctx context.Context, raw []byte) ([]Operation, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	var out []Operation
	eachOperation(doc, func(id, method, path string, op *openapi3.Operation) {
		out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
	})
	slices.SortFunc(out, func(a, b Operation) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// SchemaForOperation builds a schema from the request body of operationID.
// Properties are sorted by name; nested objects become dotted paths.
// Patterns the regexp package cannot compile, such as lookaheads, are logged
// and dropped.
func SchemaForOperation(ctx context.Context, raw []byte, operationID string, opts ...Option) (schema.Schema, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return schema.Schema{}, err
	}

	var found *openapi3.Operation
	eachOperation(doc, func(id, _, _ string, op *openapi3.Operation) {
		if id == operationID {
			found = op
		}
	})
	if found == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(found.RequestBody)
	if body == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	out := schema.Schema{Name: operationID}
	c := converter{operation: operationID, seen: map[*openapi3.Schema]bool{}, logger: form.StdLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	c.object("", body, &out.Properties)
	return out, nil
}

func load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

func eachOperation(doc *openapi3.T, fn func(id, method, path string, op *openapi3.Operation)) {
	if doc.Paths == nil {
		return
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			fn(id, strings.ToUpper(method), path, op)
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type converter struct {
	operation string
	seen      map[*openapi3.Schema]bool
	logger    form.Logger
}

// object appends src's properties under prefix. Recursive references stop at
// the first repetition.
func (c converter) object(prefix string, src *openapi3.Schema, into *[]schema.Property) {
	if c.seen[src] {
		return
	}
	c.seen[src] = true
	defer delete(c.seen, src)

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		value := ref.Value
		path := prefix + name
		if isObject(value) {
			c.object(path+".", value, into)
			continue
		}
		*into = append(*into, c.property(path, value, slices.Contains(src.Required, name)))
	}
}

func isObject(s *openapi3.Schema) bool {
	return s.Type.Is(openapi3.TypeObject) || (s.Type == nil && len(s.Properties) > 0)
}

func (c converter) property(path string, src *openapi3.Schema, required bool) schema.Property {
	prop := schema.Property{
		Path:     path,
		Type:     typeName(src),
		Required: required,
		Label:    src.Title,
		HelpText: src.Description,
	}
	if src.ReadOnly {
		editable := false
		prop.Editable = &editable
	}
	if hidden, _ := src.Extensions[HiddenExtension].(bool); hidden {
		prop.Type = "hidden"
	}
	if widget, ok := src.Extensions[WidgetExtension].(string); ok {
		prop.Widget = widget
	}

	enum := src.Enum
	if src.Type.Is(openapi3.TypeArray) && src.Items != nil && src.Items.Value != nil {
		prop.ItemType = typeName(src.Items.Value)
		prop.Multiple = true
		enum = src.Items.Value.Enum
	}
	for _, value := range enum {
		text := fmt.Sprint(value)
		prop.Choices = append(prop.Choices, widgets.Choice{Value: text, Label: text})
	}
	prop.Rules = c.rules(path, src, prop.Choices)
	return prop
}

// typeName maps an OpenAPI type and format onto a declared type name.
func typeName(src *openapi3.Schema) string {
	switch {
	case src.Type.Is(openapi3.TypeString):
		switch strings.ToLower(src.Format) {
		case "email":
			return "Email"
		case "uri", "url":
			return "Url"
		case "date", "date-time":
			return "Date"
		case "binary":
			return "File"
		case "password":
			return "password"
		case "uuid", "objectid":
			return "ObjectId"
		}
		return "String"
	case src.Type.Is(openapi3.TypeNumber), src.Type.Is(openapi3.TypeInteger):
		return "Number"
	case src.Type.Is(openapi3.TypeBoolean):
		return "Boolean"
	case src.Type.Is(openapi3.TypeArray):
		return "Array"
	}
	return ""
}

func (c converter) rules(path string, src *openapi3.Schema, choices []widgets.Choice) []validate.Rule {
	var out []validate.Rule
	add := func(kind, key, value string) {
		out = append(out, validate.Rule{Kind: kind, Params: map[string]string{key: value}})
	}
	if src.MinLength > 0 {
		add(validate.RuleMinLength, "value", strconv.FormatUint(src.MinLength, 10))
	}
	if src.MaxLength != nil {
		add(validate.RuleMaxLength, "value", strconv.FormatUint(*src.MaxLength, 10))
	}
	if src.Min != nil {
		add(validate.RuleMin, "value", strconv.FormatFloat(*src.Min, 'f', -1, 64))
	}
	if src.Max != nil {
		add(validate.RuleMax, "value", strconv.FormatFloat(*src.Max, 'f', -1, 64))
	}
	if src.Pattern != "" {
		if _, err := validate.Pattern(src.Pattern, ""); err != nil {
			c.logger.Error("openapi: dropping unsupported pattern", "operation", c.operation, "path", path, "pattern", src.Pattern, "error", err)
		} else {
			add(validate.RulePattern, "pattern", src.Pattern)
		}
	}

	if len(choices) == 0 {
		return out
	}
	values := make([]string, 0, len(choices))
	for _, choice := range choices {
		// oneOf params are comma separated.
		if strings.Contains(choice.Value, ",") {
			return out
		}
		values = append(values, choice.Value)
	}
	add(validate.RuleOneOf, "values", strings.Join(values, ","))
	return out
}
