package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"sort"

	"github.com/goliatone/go-modelform"
	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/openapi"
	"github.com/goliatone/go-modelform/pkg/prompt"
	"github.com/goliatone/go-modelform/pkg/render"
)

func main() {
	schemaPath := flag.String("schema", "", "YAML/JSON schema file")
	openapiSource := flag.String("openapi", "", "OpenAPI document path or URL")
	opID := flag.String("operation", "", "operation ID whose request body becomes the form")
	renderer := flag.String("renderer", "div", "renderer to use (div, p, template)")
	data := flag.String("data", "", "submission to bind, as a query string")
	interactive := flag.Bool("interactive", false, "prompt for every field in the terminal")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()
	logger := form.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}

	f, err := load(ctx, *schemaPath, *openapiSource, *opID, form.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	renderers, err := modelform.Renderers()
	if err != nil {
		log.Fatalf("Failed to set up renderers: %v", err)
	}
	r, err := renderers.Lookup(*renderer)
	if err != nil {
		log.Fatalf("Failed to select renderer: %v", err)
	}

	var (
		html        string
		fieldErrors map[string]string
	)
	switch {
	case *interactive:
		submission, err := prompt.Collect(ctx, f, prompt.NewSurveyDriver(os.Stderr))
		if err != nil {
			log.Fatalf("Failed to collect answers: %v", err)
		}
		html, fieldErrors = bindAndRender(ctx, f, submission, r)
	case *data != "":
		values, err := url.ParseQuery(*data)
		if err != nil {
			log.Fatalf("Invalid -data: %v", err)
		}
		html, fieldErrors = bindAndRender(ctx, f, form.DataFromValues(values), r)
	default:
		html, err = f.ToHTML(r)
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(html)
	}

	if len(fieldErrors) == 0 {
		return
	}
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, fieldErrors[name])
	}
	os.Exit(1)
}

func load(ctx context.Context, schemaPath, source, opID string, opts ...form.Option) (*form.Form, error) {
	switch {
	case schemaPath != "" && source != "":
		return nil, fmt.Errorf("-schema and -openapi are mutually exclusive")
	case schemaPath != "":
		return modelform.FromFile(schemaPath, opts...)
	case source != "":
		if opID == "" {
			return nil, fmt.Errorf("-operation is required with -openapi")
		}
		raw, err := openapi.Fetch(ctx, source, openapi.WithHTTPFallback(0))
		if err != nil {
			return nil, err
		}
		return modelform.FromOpenAPI(ctx, raw, opID, opts...)
	}
	return nil, fmt.Errorf("one of -schema or -openapi is required")
}

func bindAndRender(ctx context.Context, f *form.Form, data form.Data, r render.Renderer) (string, map[string]string) {
	bound := f.Bind(data)
	if err := bound.Validate(ctx); err != nil {
		log.Fatalf("Failed to validate: %v", err)
	}
	html, err := bound.ToHTML(r)
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}
	return html, bound.Errors()
}
