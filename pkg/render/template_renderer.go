package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-modelform/internal/markup"
	"github.com/goliatone/go-modelform/pkg/field"
	"github.com/goliatone/go-modelform/pkg/render/template"
	"github.com/goliatone/go-modelform/pkg/render/template/gotemplate"
)

// ThemeFieldPartial is the theme partial key that overrides the field
// template. The value is a template name or inline template content.
const ThemeFieldPartial = "forms.field"

const defaultFieldTemplate = "field"

//go:embed templates/*.tpl
var builtinTemplates embed.FS

var (
	defaultEngineOnce sync.Once
	defaultEngine     *gotemplate.Engine
	defaultEngineErr  error
)

// DefaultTemplateFS exposes the built-in templates so callers can layer
// their own files in front of them.
func DefaultTemplateFS() fs.FS {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func builtinEngine() (*gotemplate.Engine, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = gotemplate.New(gotemplate.WithFS(DefaultTemplateFS()))
	})
	return defaultEngine, defaultEngineErr
}

// Template renders each field through a template engine. The template sees
// name, id, label, help_text, error, input, hidden, required, classes,
// wrapper_class, style, theme and locale.
type Template struct {
	engine     template.TemplateRenderer
	name       string
	theme      *theme.RendererConfig
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
}

// TemplateOption configures a Template renderer.
type TemplateOption func(*Template)

// WithEngine renders through engine instead of the built-in pongo2 engine.
func WithEngine(engine template.TemplateRenderer) TemplateOption {
	return func(t *Template) {
		if engine != nil {
			t.engine = engine
		}
	}
}

// WithTemplateName selects the field template by name or inline content.
func WithTemplateName(name string) TemplateOption {
	return func(t *Template) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			t.name = trimmed
		}
	}
}

// WithTheme applies a go-theme renderer configuration: its name and variant
// become wrapper classes, CSS variables become the wrapper style, tokens are
// exposed to templates and the forms.field partial replaces the template.
func WithTheme(cfg *theme.RendererConfig) TemplateOption {
	return func(t *Template) {
		t.theme = cfg
	}
}

// WithTranslator translates labels and validation messages. Both are used
// as their own keys.
func WithTranslator(translator Translator, locale string) TemplateOption {
	return func(t *Template) {
		t.translator = translator
		t.locale = strings.TrimSpace(locale)
	}
}

// WithMissingTranslation overrides the text rendered for untranslated keys.
func WithMissingTranslation(handler MissingTranslationHandler) TemplateOption {
	return func(t *Template) {
		t.onMissing = handler
	}
}

// NewTemplate constructs a template renderer.
func NewTemplate(opts ...TemplateOption) (*Template, error) {
	t := &Template{name: defaultFieldTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.engine == nil {
		engine, err := builtinEngine()
		if err != nil {
			return nil, fmt.Errorf("render: template engine: %w", err)
		}
		t.engine = engine
	}
	return t, nil
}

// Name implements Renderer.
func (t *Template) Name() string { return "template" }

// RenderField implements Renderer.
func (t *Template) RenderField(b *field.Bound) (string, error) {
	if t == nil || t.engine == nil {
		return "", errors.New("render: template renderer is not initialised")
	}
	if b == nil {
		return "", nil
	}
	name := t.name
	if t.theme != nil {
		if partial := strings.TrimSpace(t.theme.Partials[ThemeFieldPartial]); partial != "" {
			name = partial
		}
	}
	out, err := t.engine.Render(name, t.fieldContext(b))
	if err != nil {
		return "", fmt.Errorf("render: field %s: %w", b.Name(), err)
	}
	return out, nil
}

func (t *Template) fieldContext(b *field.Bound) map[string]any {
	f := b.Field()
	label := translate(t.locale, f.Label(), f.Label(), t.translator, t.onMissing)
	message := b.ErrorMessage()
	if message != "" {
		message = translate(t.locale, message, message, t.translator, t.onMissing)
	}

	wrapper := []string{"field_wrapper"}
	themeCtx := map[string]any{}
	style := ""
	if cfg := t.theme; cfg != nil {
		if cfg.Theme != "" {
			wrapper = append(wrapper, "theme-"+cfg.Theme)
		}
		if cfg.Variant != "" {
			wrapper = append(wrapper, "variant-"+cfg.Variant)
		}
		themeCtx["name"] = cfg.Theme
		themeCtx["variant"] = cfg.Variant
		themeCtx["tokens"] = maps.Clone(cfg.Tokens)
		style = cssVarsStyle(cfg.CSSVars)
	}

	return map[string]any{
		"name":          b.Name(),
		"id":            b.ID(),
		"label":         label,
		"help_text":     markup.SanitizeHelp(f.HelpText()),
		"error":         message,
		"input":         b.Input(),
		"hidden":        f.Widget().Hidden(),
		"required":      f.Required(),
		"classes":       strings.Join(b.Classes(), " "),
		"wrapper_class": strings.Join(wrapper, " "),
		"style":         style,
		"theme":         themeCtx,
		"locale":        t.locale,
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	parts := make([]string, 0, len(vars))
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
