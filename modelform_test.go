package modelform

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/schema"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

const contactOpenAPI = `
openapi: 3.0.3
info: {title: Contact, version: 1.0.0}
paths:
  /contact:
    post:
      operationId: sendMessage
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                email: {type: string, format: email}
                message: {type: string, x-modelform-widget: textarea}
                sender:
                  type: object
                  properties:
                    name: {type: string}
      responses:
        "204": {description: sent}
`

func TestFromYAML(t *testing.T) {
	f, err := FromYAML([]byte(`
name: person
properties:
  - {path: name, type: String, required: true}
  - {path: age, type: Number}
`), form.WithLogger(form.NopLogger()))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if f.Name() != "person" {
		t.Fatalf("unexpected form name %q", f.Name())
	}

	bound := f.Bind(form.Data{"age": "21"})
	if err := bound.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"name": "This field is required."}, bound.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFromYAML_InvalidDocument(t *testing.T) {
	if _, err := FromYAML([]byte("name: x\nproperties:\n  - {path: a, type: String, bogus: 1}\n")); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestFromFile(t *testing.T) {
	f, err := FromFile("pkg/schema/testdata/signup.yaml", form.WithLogger(form.NopLogger()))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if diff := cmp.Diff([]string{"username", "age", "tags", "password"}, f.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSchema(t *testing.T) {
	f, err := FromSchema(schema.Schema{Name: "flag", Properties: []schema.Property{{Path: "on", Type: "Boolean"}}})
	if err != nil {
		t.Fatalf("FromSchema: %v", err)
	}
	if got := f.WidgetKinds()["on"]; got != widgets.KindCheckbox {
		t.Fatalf("expected checkbox widget, got %q", got)
	}
}

func TestFromOpenAPI_SkipsNestedProperties(t *testing.T) {
	f, err := FromOpenAPI(context.Background(), []byte(contactOpenAPI), "sendMessage", form.WithLogger(form.NopLogger()))
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "message"}, f.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]widgets.Kind{"email": widgets.KindEmail, "message": widgets.KindTextarea}
	if diff := cmp.Diff(want, f.WidgetKinds()); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}

type countingLogger struct {
	errors int
}

func (l *countingLogger) Debug(string, ...any) {}
func (l *countingLogger) Error(string, ...any) { l.errors++ }

func TestFromOpenAPI_DropsUnsupportedPattern(t *testing.T) {
	document := strings.Replace(contactOpenAPI,
		"message: {type: string, x-modelform-widget: textarea}",
		"message: {type: string, x-modelform-widget: textarea}\n                handle: {type: string, pattern: \"^(?!admin)[a-z]+$\"}", 1)

	logger := &countingLogger{}
	f, err := FromOpenAPI(context.Background(), []byte(document), "sendMessage", form.WithLogger(logger))
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "handle", "message"}, f.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	if logger.errors != 1 {
		t.Fatalf("expected the dropped pattern to be logged once, got %d", logger.errors)
	}

	bound := f.Bind(form.Data{"email": "ada@example.com", "handle": "admin"})
	if err := bound.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !bound.IsValid() {
		t.Fatalf("expected no pattern check on handle, got %v", bound.Errors())
	}
}

func TestFromOpenAPI_UnknownOperation(t *testing.T) {
	if _, err := FromOpenAPI(context.Background(), []byte(contactOpenAPI), "missing"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestRenderers(t *testing.T) {
	renderers, err := Renderers()
	if err != nil {
		t.Fatalf("Renderers: %v", err)
	}
	if diff := cmp.Diff([]string{"div", "p", "template"}, renderers.Names()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	f, err := FromYAML([]byte("name: n\nproperties:\n  - {path: title, type: String}\n"))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	for name, r := range renderers {
		html, err := f.ToHTML(r)
		if err != nil {
			t.Fatalf("%s: ToHTML: %v", name, err)
		}
		if !strings.Contains(html, `name="title"`) {
			t.Fatalf("%s: expected title input, got %q", name, html)
		}
	}
}
