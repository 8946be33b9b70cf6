package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-modelform/internal/markup"
)

// Kind identifies the HTML shape a widget renders.
type Kind string

// Single-value input kinds. They differ only by the type attribute.
const (
	KindText          Kind = "text"
	KindPassword      Kind = "password"
	KindHidden        Kind = "hidden"
	KindFile          Kind = "file"
	KindImage         Kind = "image"
	KindColor         Kind = "color"
	KindDate          Kind = "date"
	KindDatetime      Kind = "datetime"
	KindDatetimeLocal Kind = "datetime-local"
	KindEmail         Kind = "email"
	KindMonth         Kind = "month"
	KindNumber        Kind = "number"
	KindRange         Kind = "range"
	KindSearch        Kind = "search"
	KindTel           Kind = "tel"
	KindTime          Kind = "time"
	KindURL           Kind = "url"
	KindWeek          Kind = "week"
)

// Structured widget kinds.
const (
	KindCheckbox         Kind = "checkbox"
	KindSelect           Kind = "select"
	KindMultipleSelect   Kind = "multiple-select"
	KindMultipleCheckbox Kind = "multiple-checkbox"
	KindMultipleRadio    Kind = "multiple-radio"
	KindTextarea         Kind = "textarea"
	KindCaptcha          Kind = "captcha"
)

var inputKinds = map[Kind]struct{}{
	KindText: {}, KindPassword: {}, KindHidden: {}, KindFile: {}, KindImage: {},
	KindColor: {}, KindDate: {}, KindDatetime: {}, KindDatetimeLocal: {},
	KindEmail: {}, KindMonth: {}, KindNumber: {}, KindRange: {}, KindSearch: {},
	KindTel: {}, KindTime: {}, KindURL: {}, KindWeek: {},
}

// Known reports whether kind names a built-in widget.
func Known(kind Kind) bool {
	if _, ok := inputKinds[kind]; ok {
		return true
	}
	switch kind {
	case KindCheckbox, KindSelect, KindMultipleSelect, KindMultipleCheckbox,
		KindMultipleRadio, KindTextarea, KindCaptcha:
		return true
	}
	return false
}

// Choice is one selectable value of a select, radio or checkbox group.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options configure a widget at construction time.
type Options struct {
	// Classes are appended after the classes supplied by the field.
	Classes []string
	// Attrs are candidate HTML attributes. Only whitelisted names survive.
	Attrs   map[string]string
	Choices []Choice
	// Rows and Cols size textarea widgets.
	Rows int
	Cols int
	// SiteKey is the public key embedded in captcha challenges.
	SiteKey string
}

// Input carries the per-render state a widget needs from its field.
type Input struct {
	Name    string
	ID      string
	Classes []string
	Value   string
	Values  []string
	Checked bool
}

// Widget renders one HTML input shape. Widgets are immutable values and safe
// for concurrent use.
type Widget struct {
	kind    Kind
	classes []string
	attrs   []attribute
	choices []Choice
	rows    int
	cols    int
	siteKey string
}

// New constructs a widget of the given kind.
func New(kind Kind, opts Options) (Widget, error) {
	if !Known(kind) {
		return Widget{}, fmt.Errorf("widgets: unknown widget kind %q", kind)
	}
	return Widget{
		kind:    kind,
		classes: compactClasses(opts.Classes),
		attrs:   filterAttrs(opts.Attrs),
		choices: slices.Clone(opts.Choices),
		rows:    opts.Rows,
		cols:    opts.Cols,
		siteKey: strings.TrimSpace(opts.SiteKey),
	}, nil
}

// MustNew panics when kind is unknown. Useful for package-level defaults.
func MustNew(kind Kind, opts Options) Widget {
	w, err := New(kind, opts)
	if err != nil {
		panic(err)
	}
	return w
}

// Kind returns the widget kind.
func (w Widget) Kind() Kind {
	return w.kind
}

// Hidden reports whether the widget renders no visible chrome.
func (w Widget) Hidden() bool {
	return w.kind == KindHidden
}

// Choices returns a copy of the configured choices.
func (w Widget) Choices() []Choice {
	return slices.Clone(w.choices)
}

// Render produces the HTML fragment for in.
func (w Widget) Render(in Input) string {
	if in.ID == "" && in.Name != "" {
		in.ID = "id_" + in.Name
	}
	classes := mergeClasses(in.Classes, w.classes)

	var b strings.Builder
	switch w.kind {
	case KindCheckbox:
		w.renderCheckbox(&b, in, classes)
	case KindSelect, KindMultipleSelect:
		w.renderSelect(&b, in, classes)
	case KindMultipleCheckbox:
		w.renderGroup(&b, in, classes, "checkbox")
	case KindMultipleRadio:
		w.renderGroup(&b, in, classes, "radio")
	case KindTextarea:
		w.renderTextarea(&b, in, classes)
	case KindCaptcha:
		w.renderCaptcha(&b, in, classes)
	default:
		w.renderInput(&b, in, classes)
	}
	return b.String()
}

func (w Widget) renderInput(b *strings.Builder, in Input, classes []string) {
	b.WriteString(`<input`)
	markup.Attr(b, "type", string(w.kind))
	writeIdentity(b, in, classes)
	switch w.kind {
	case KindPassword, KindFile, KindImage:
	default:
		markup.Attr(b, "value", in.Value)
	}
	w.writeAttrs(b)
	b.WriteString(` />`)
}

func (w Widget) renderCheckbox(b *strings.Builder, in Input, classes []string) {
	b.WriteString(`<input type="checkbox"`)
	writeIdentity(b, in, classes)
	markup.Flag(b, "checked", in.Checked)
	w.writeAttrs(b)
	b.WriteString(` />`)
}

func (w Widget) renderSelect(b *strings.Builder, in Input, classes []string) {
	b.WriteString(`<select`)
	if w.kind == KindMultipleSelect {
		markup.Flag(b, "multiple", true)
	}
	writeIdentity(b, in, classes)
	w.writeAttrs(b)
	b.WriteByte('>')
	for _, choice := range w.choices {
		b.WriteString(`<option`)
		markup.Attr(b, "value", choice.Value)
		markup.Flag(b, "selected", isSelected(in, choice.Value))
		b.WriteByte('>')
		b.WriteString(markup.Escape(choice.Label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
}

func (w Widget) renderGroup(b *strings.Builder, in Input, classes []string, inputType string) {
	for _, choice := range w.choices {
		id := in.ID + "_" + choice.Value
		b.WriteString(`<input`)
		markup.Attr(b, "type", inputType)
		markup.Attr(b, "name", in.Name)
		markup.Attr(b, "id", id)
		markup.Classes(b, classes)
		markup.Attr(b, "value", choice.Value)
		markup.Flag(b, "checked", isSelected(in, choice.Value))
		b.WriteByte('>')
		b.WriteString(`<label`)
		markup.Attr(b, "for", id)
		b.WriteByte('>')
		b.WriteString(markup.Escape(choice.Label))
		b.WriteString(`</label>`)
	}
}

func (w Widget) renderTextarea(b *strings.Builder, in Input, classes []string) {
	b.WriteString(`<textarea`)
	writeIdentity(b, in, classes)
	if w.rows > 0 {
		markup.Attr(b, "rows", fmt.Sprint(w.rows))
	}
	if w.cols > 0 {
		markup.Attr(b, "cols", fmt.Sprint(w.cols))
	}
	w.writeAttrs(b)
	b.WriteByte('>')
	b.WriteString(markup.Escape(in.Value))
	b.WriteString(`</textarea>`)
}

const (
	captchaChallengeURL = "https://www.google.com/recaptcha/api/challenge?k="
	captchaNoscriptURL  = "https://www.google.com/recaptcha/api/noscript?k="
)

func (w Widget) renderCaptcha(b *strings.Builder, in Input, classes []string) {
	b.WriteString(`<div`)
	markup.Attr(b, "id", in.ID)
	markup.Classes(b, classes)
	w.writeAttrs(b)
	b.WriteByte('>')
	b.WriteString(`<script type="text/javascript"`)
	markup.Attr(b, "src", captchaChallengeURL+w.siteKey)
	b.WriteString(`></script>`)
	b.WriteString(`<noscript><iframe`)
	markup.Attr(b, "src", captchaNoscriptURL+w.siteKey)
	b.WriteString(` height="300" width="500" frameborder="0"></iframe><br>`)
	b.WriteString(`<textarea name="recaptcha_challenge_field" rows="3" cols="40"></textarea>`)
	b.WriteString(`<input type="hidden" name="recaptcha_response_field" value="manual_challenge"></noscript>`)
	b.WriteString(`</div>`)
}

func (w Widget) writeAttrs(b *strings.Builder) {
	for _, attr := range w.attrs {
		markup.Attr(b, attr.name, attr.value)
	}
}

func writeIdentity(b *strings.Builder, in Input, classes []string) {
	markup.Attr(b, "name", in.Name)
	markup.Attr(b, "id", in.ID)
	markup.Classes(b, classes)
}

func isSelected(in Input, value string) bool {
	if len(in.Values) > 0 {
		return slices.Contains(in.Values, value)
	}
	return in.Value != "" && in.Value == value
}

func compactClasses(classes []string) []string {
	if len(classes) == 0 {
		return nil
	}
	out := make([]string, 0, len(classes))
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if !slices.Contains(out, token) {
				out = append(out, token)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeClasses(first, second []string) []string {
	if len(second) == 0 {
		return compactClasses(first)
	}
	merged := make([]string, 0, len(first)+len(second))
	merged = append(merged, first...)
	merged = append(merged, second...)
	return compactClasses(merged)
}
