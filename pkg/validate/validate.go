// Package validate defines the validator contract fields run after binding,
// plus the built-in validators, declarative rules, CEL expressions and the
// database-backed uniqueness check.
//
// A validator either accepts the value (nil), rejects it with a user-facing
// message (an *Error), or fails for an unrelated reason such as an
// unreachable database. Only the first kind of failure ends up on the field;
// the second is reported to the caller of Validate.
package validate

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
)

// Values is a read-only view of a bound form. Validators may read any field
// but must not retain the view beyond the call.
type Values interface {
	Value(name string) (any, bool)
	Names() []string
}

// Target is the field under validation.
type Target struct {
	Name string
	// Raw is the submitted value: a string, a []string for repeated keys, or
	// a *multipart.FileHeader for uploads.
	Raw any
	// Value is the parsed value produced by the field's kind.
	Value any
}

// Text returns the submitted value as a single string.
func (t Target) Text() string {
	return RawText(t.Raw)
}

// Texts returns every submitted string value.
func (t Target) Texts() []string {
	switch v := t.Raw.(type) {
	case nil:
		return nil
	case []string:
		return v
	default:
		return []string{RawText(v)}
	}
}

// RawText flattens a raw submitted value into one string. Lists yield their
// first element.
func RawText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case *multipart.FileHeader:
		if v == nil {
			return ""
		}
		return v.Filename
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Validator checks one bound field.
type Validator interface {
	Validate(ctx context.Context, form Values, field Target) error
}

// Func adapts a function to the Validator interface. Use it for cross-field
// and asynchronous checks.
type Func func(ctx context.Context, form Values, field Target) error

// Validate implements Validator.
func (fn Func) Validate(ctx context.Context, form Values, field Target) error {
	return fn(ctx, form, field)
}

// Error is a user-facing validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a validation failure with a formatted message.
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Message extracts the user-facing message from err. The boolean is false
// when err is not a validation failure.
func Message(err error) (string, bool) {
	var vErr *Error
	if !errors.As(err, &vErr) {
		return "", false
	}
	return strings.TrimSpace(vErr.Message), true
}

// Check builds a validator from a predicate over the parsed value.
func Check(predicate func(value any) bool, message string) Validator {
	return Func(func(_ context.Context, _ Values, field Target) error {
		if predicate == nil || predicate(field.Value) {
			return nil
		}
		return &Error{Message: message}
	})
}
