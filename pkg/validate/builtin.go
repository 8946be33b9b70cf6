package validate

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

func orDefault(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}

func text(field Target) string {
	if s, ok := field.Value.(string); ok {
		return s
	}
	return field.Text()
}

// MinLength rejects values shorter than n characters.
func MinLength(n int, message string) Validator {
	message = orDefault(message, fmt.Sprintf("Ensure this value has at least %d characters.", n))
	return Func(func(_ context.Context, _ Values, field Target) error {
		if utf8.RuneCountInString(text(field)) < n {
			return &Error{Message: message}
		}
		return nil
	})
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int, message string) Validator {
	message = orDefault(message, fmt.Sprintf("Ensure this value has at most %d characters.", n))
	return Func(func(_ context.Context, _ Values, field Target) error {
		if utf8.RuneCountInString(text(field)) > n {
			return &Error{Message: message}
		}
		return nil
	})
}

// Pattern rejects values that do not match expr. The expression is anchored
// the way the HTML pattern attribute is.
func Pattern(expr, message string) (Validator, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("validate: compile pattern %q: %w", expr, err)
	}
	message = orDefault(message, "Enter a value in the expected format.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		if !re.MatchString(text(field)) {
			return &Error{Message: message}
		}
		return nil
	}), nil
}

// MustPattern is Pattern that panics on an invalid expression.
func MustPattern(expr, message string) Validator {
	v, err := Pattern(expr, message)
	if err != nil {
		panic(err)
	}
	return v
}

func number(field Target) (float64, bool) {
	if raw := strings.TrimSpace(field.Text()); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		return f, err == nil
	}
	switch v := field.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Numeric rejects submissions that do not parse as a number.
func Numeric(message string) Validator {
	message = orDefault(message, "Enter a number.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		if _, ok := number(field); !ok {
			return &Error{Message: message}
		}
		return nil
	})
}

// Min rejects numbers lower than limit. Non-numeric input is rejected too.
func Min(limit float64, message string) Validator {
	message = orDefault(message, fmt.Sprintf("Ensure this value is greater than or equal to %s.", formatFloat(limit)))
	return Func(func(_ context.Context, _ Values, field Target) error {
		if n, ok := number(field); !ok || n < limit {
			return &Error{Message: message}
		}
		return nil
	})
}

// Max rejects numbers greater than limit. Non-numeric input is rejected too.
func Max(limit float64, message string) Validator {
	message = orDefault(message, fmt.Sprintf("Ensure this value is less than or equal to %s.", formatFloat(limit)))
	return Func(func(_ context.Context, _ Values, field Target) error {
		if n, ok := number(field); !ok || n > limit {
			return &Error{Message: message}
		}
		return nil
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Email rejects anything but a bare address such as "ada@example.com".
func Email(message string) Validator {
	message = orDefault(message, "Enter a valid email address.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		value := strings.TrimSpace(text(field))
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return &Error{Message: message}
		}
		return nil
	})
}

// URL rejects anything but absolute http(s) URLs.
func URL(message string) Validator {
	message = orDefault(message, "Enter a valid URL.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		parsed, err := url.ParseRequestURI(strings.TrimSpace(text(field)))
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return &Error{Message: message}
		}
		return nil
	})
}

// IsIdentifier reports whether value is a document identifier: a 24
// character hexadecimal object id or a UUID.
func IsIdentifier(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) == 24 {
		if _, err := hex.DecodeString(value); err == nil {
			return true
		}
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// Identifier rejects values that are neither object ids nor UUIDs.
func Identifier(message string) Validator {
	message = orDefault(message, "Enter a valid identifier.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		if !IsIdentifier(text(field)) {
			return &Error{Message: message}
		}
		return nil
	})
}

// OneOf rejects submissions containing a value outside allowed.
func OneOf(allowed []string, message string) Validator {
	allowed = slices.Clone(allowed)
	message = orDefault(message, "Select a valid choice.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		for _, value := range field.Texts() {
			if !slices.Contains(allowed, value) {
				return &Error{Message: message}
			}
		}
		return nil
	})
}

// Date rejects submissions that did not parse into a date.
func Date(message string) Validator {
	message = orDefault(message, "Enter a valid date.")
	return Func(func(_ context.Context, _ Values, field Target) error {
		if _, ok := field.Value.(time.Time); !ok {
			return &Error{Message: message}
		}
		return nil
	})
}

// Matches rejects values that differ from another field's parsed value, as
// in password confirmation.
func Matches(other, message string) Validator {
	message = orDefault(message, fmt.Sprintf("Must match %s.", other))
	return Func(func(_ context.Context, form Values, field Target) error {
		if form == nil {
			return nil
		}
		value, ok := form.Value(other)
		if !ok || fmt.Sprint(value) != fmt.Sprint(field.Value) {
			return &Error{Message: message}
		}
		return nil
	})
}
