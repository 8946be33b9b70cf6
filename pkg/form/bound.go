package form

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-modelform/pkg/field"
	"github.com/goliatone/go-modelform/pkg/render"
)

// BoundForm is one submission bound to a Form. It implements
// validate.Values so validators can read sibling fields.
type BoundForm struct {
	form   *Form
	fields []*field.Bound
}

// Form returns the form bf was bound from.
func (bf *BoundForm) Form() *Form { return bf.form }

// Fields returns the bound fields in declaration order.
func (bf *BoundForm) Fields() []*field.Bound {
	return append([]*field.Bound(nil), bf.fields...)
}

// Field returns the bound field with the given name, or nil.
func (bf *BoundForm) Field(name string) *field.Bound {
	idx, ok := bf.form.index[name]
	if !ok {
		return nil
	}
	return bf.fields[idx]
}

// Value returns the parsed value of the named field.
func (bf *BoundForm) Value(name string) (any, bool) {
	b := bf.Field(name)
	if b == nil {
		return nil, false
	}
	return b.Value(), true
}

// Names returns the field names in declaration order.
func (bf *BoundForm) Names() []string {
	return bf.form.Names()
}

// Data returns the parsed values keyed by field name.
func (bf *BoundForm) Data() map[string]any {
	out := make(map[string]any, len(bf.fields))
	for _, b := range bf.fields {
		out[b.Name()] = b.Value()
	}
	return out
}

// Validate validates every field concurrently and returns once each has
// finished or hit the form's field timeout, whichever comes first. A
// validator that ignores its context does not hold Validate past the
// timeout. Validation failures are recorded on the fields; the returned
// error reports failures that are not about the submitted values, with an
// expired field timeout wrapping context.DeadlineExceeded.
func (bf *BoundForm) Validate(ctx context.Context) error {
	timeout := bf.form.fieldTimeout
	if timeout <= 0 {
		timeout = DefaultFieldTimeout
	}

	// Each goroutine is the only writer of its field's error.
	var g errgroup.Group
	for _, b := range bf.fields {
		g.Go(func() error {
			fieldCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := b.Validate(fieldCtx, bf); err != nil {
				return err
			}
			if errors.Is(fieldCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				return fmt.Errorf("form: validate %s: %w", b.Name(), context.DeadlineExceeded)
			}
			return nil
		})
	}
	return g.Wait()
}

// ValidateAsync validates in a new goroutine and calls fn exactly once with
// the result.
func (bf *BoundForm) ValidateAsync(ctx context.Context, fn func(*BoundForm, error)) {
	go func() {
		err := bf.Validate(ctx)
		if fn != nil {
			fn(bf, err)
		}
	}()
}

// IsValid reports whether no field carries an error. It reflects the last
// Validate call; a fresh bind is trivially valid.
func (bf *BoundForm) IsValid() bool {
	for _, b := range bf.fields {
		if b.HasError() {
			return false
		}
	}
	return true
}

// Errors returns the validation messages keyed by field name.
func (bf *BoundForm) Errors() map[string]string {
	out := make(map[string]string)
	for _, b := range bf.fields {
		if b.HasError() {
			out[b.Name()] = b.ErrorMessage()
		}
	}
	return out
}

// ToHTML renders every field with r (div wrappers when nil) in declaration
// order, followed by the hidden inputs.
func (bf *BoundForm) ToHTML(r render.Renderer, hidden ...render.HiddenField) (string, error) {
	return render.Fields(r, bf.fields, hidden...)
}
