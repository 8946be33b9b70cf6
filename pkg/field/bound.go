package field

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelform/internal/markup"
	"github.com/goliatone/go-modelform/pkg/validate"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// Part names a fragment for AsP and AsDiv.
type Part string

const (
	PartHelpText Part = "help_text"
	PartError    Part = "error"
	PartLabel    Part = "label"
	PartInput    Part = "input"
)

// Bound is a field bound to one submitted value. The error message is only
// ever set by Validate.
type Bound struct {
	field *Field
	raw   any
	value any
	err   string
}

// Field returns the definition b was bound from.
func (b *Bound) Field() *Field { return b.field }

// Name returns the field name.
func (b *Bound) Name() string { return b.field.spec.Name }

// Raw returns the submitted value as received.
func (b *Bound) Raw() any { return b.raw }

// Value returns the parsed value.
func (b *Bound) Value() any { return b.value }

// ErrorMessage returns the validation message, or "" when the field is valid
// or has not been validated.
func (b *Bound) ErrorMessage() string { return b.err }

// HasError reports whether validation recorded a message.
func (b *Bound) HasError() bool { return b.err != "" }

// Validate runs the required check and then the validators in order,
// stopping at the first failure. Empty submissions skip the validators. form
// exposes the other bound fields to cross-field validators.
//
// Validation failures are recorded on b; the returned error is reserved for
// failures that are not about the value, such as a canceled context or an
// unreachable database. Validate returns once ctx is done even if a
// validator is still running; a late result is discarded.
func (b *Bound) Validate(ctx context.Context, form validate.Values) error {
	b.err = ""
	if ctx.Done() == nil {
		msg, err := b.check(ctx, form)
		b.err = msg
		return err
	}

	type result struct {
		msg string
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := b.check(ctx, form)
		done <- result{msg: msg, err: err}
	}()

	select {
	case r := <-done:
		b.err = r.msg
		return r.err
	case <-ctx.Done():
		return fmt.Errorf("field: validate %s: %w", b.field.spec.Name, ctx.Err())
	}
}

// check computes the validation message without touching b.
func (b *Bound) check(ctx context.Context, form validate.Values) (string, error) {
	spec := b.field.spec
	if IsEmpty(b.raw) {
		if spec.Required {
			return RequiredMessage, nil
		}
		return "", nil
	}

	target := validate.Target{Name: spec.Name, Raw: b.raw, Value: b.value}
	for _, v := range spec.Validators {
		if v == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("field: validate %s: %w", spec.Name, err)
		}
		err := v.Validate(ctx, form, target)
		if err == nil {
			continue
		}
		msg, ok := validate.Message(err)
		if !ok {
			return "", fmt.Errorf("field: validate %s: %w", spec.Name, err)
		}
		if msg == "" {
			msg = InvalidMessage
		}
		return msg, nil
	}
	return "", nil
}

// Classes returns the CSS classes describing the field state.
func (b *Bound) Classes() []string {
	classes := []string{"field"}
	if b.err != "" {
		classes = append(classes, "error")
	}
	if b.field.spec.Required {
		classes = append(classes, "required")
	}
	return classes
}

// ID returns the input element id.
func (b *Bound) ID() string {
	return "id_" + b.field.spec.Name
}

// Label renders the label element.
func (b *Bound) Label() string {
	if b.field.widget.Hidden() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<label`)
	markup.Attr(&sb, "for", b.ID())
	sb.WriteByte('>')
	sb.WriteString(markup.Escape(b.field.Label()))
	sb.WriteString(`</label>`)
	return sb.String()
}

// HelpText renders the sanitised help paragraph, or "" without help text.
func (b *Bound) HelpText() string {
	if b.field.widget.Hidden() {
		return ""
	}
	help := markup.SanitizeHelp(b.field.spec.HelpText)
	if help == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<p class="help_text"`)
	markup.Attr(&sb, "for", b.ID())
	sb.WriteByte('>')
	sb.WriteString(help)
	sb.WriteString(`</p>`)
	return sb.String()
}

// ErrorHTML renders the error label, or "" when the field is valid.
func (b *Bound) ErrorHTML() string {
	if b.field.widget.Hidden() || b.err == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<label`)
	markup.Attr(&sb, "for", b.ID())
	sb.WriteString(` class="error">`)
	sb.WriteString(markup.Escape(b.err))
	sb.WriteString(`</label>`)
	return sb.String()
}

// Input renders the widget with the bound value.
func (b *Bound) Input() string {
	in := widgets.Input{
		Name:    b.field.spec.Name,
		ID:      b.ID(),
		Classes: b.Classes(),
	}
	switch raw := b.raw.(type) {
	case []string:
		in.Values = raw
		if len(raw) > 0 {
			in.Value = raw[0]
		}
	case []any:
		for _, item := range raw {
			in.Values = append(in.Values, validate.RawText(item))
		}
		if len(in.Values) > 0 {
			in.Value = in.Values[0]
		}
	default:
		if !IsEmpty(b.raw) {
			in.Value = validate.RawText(b.raw)
		}
	}
	if b.field.spec.Kind == KindBoolean {
		in.Checked, _ = Parse(KindBoolean, b.raw).(bool)
	}
	return b.field.widget.Render(in)
}

// Part renders one named fragment. Unknown names render "".
func (b *Bound) Part(part Part) string {
	switch part {
	case PartHelpText:
		return b.HelpText()
	case PartError:
		return b.ErrorHTML()
	case PartLabel:
		return b.Label()
	case PartInput:
		return b.Input()
	}
	return ""
}

// Full renders help text, error, label and input separated by spaces.
func (b *Bound) Full() string {
	return b.join(PartHelpText, PartError, PartLabel, PartInput)
}

// AsP wraps the requested parts, or Full when none are given, in a
// paragraph.
func (b *Bound) AsP(parts ...Part) string {
	return b.wrap("p", parts)
}

// AsDiv wraps the requested parts, or Full when none are given, in a div.
func (b *Bound) AsDiv(parts ...Part) string {
	return b.wrap("div", parts)
}

func (b *Bound) join(parts ...Part) string {
	rendered := make([]string, len(parts))
	for i, part := range parts {
		rendered[i] = b.Part(part)
	}
	return strings.Join(rendered, " ")
}

func (b *Bound) wrap(tag string, parts []Part) string {
	inner := b.Full()
	if len(parts) > 0 {
		inner = b.join(parts...)
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(tag)
	sb.WriteString(` class="field_wrapper"`)
	markup.Attr(&sb, "id", "wrap_"+b.field.spec.Name)
	sb.WriteByte('>')
	sb.WriteString(inner)
	sb.WriteString(`</`)
	sb.WriteString(tag)
	sb.WriteByte('>')
	return sb.String()
}
