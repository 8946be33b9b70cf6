package validate

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type mapValues map[string]any

func (m mapValues) Value(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapValues) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func run(t *testing.T, v Validator, field Target) (string, bool) {
	t.Helper()
	err := v.Validate(context.Background(), mapValues{}, field)
	if err == nil {
		return "", true
	}
	msg, ok := Message(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	return msg, false
}

func TestCheck(t *testing.T) {
	v := Check(func(value any) bool { return value == "ok" }, "must be ok")
	if _, ok := run(t, v, Target{Raw: "ok", Value: "ok"}); !ok {
		t.Fatalf("expected ok value to pass")
	}
	if msg, ok := run(t, v, Target{Raw: "no", Value: "no"}); ok || msg != "must be ok" {
		t.Fatalf("expected failure with message, got %q ok=%v", msg, ok)
	}
}

func TestMessage_NonValidationError(t *testing.T) {
	if _, ok := Message(errors.New("boom")); ok {
		t.Fatalf("plain errors are not validation failures")
	}
	msg, ok := Message(Errorf("too %s", "short"))
	if !ok || msg != "too short" {
		t.Fatalf("unexpected message %q ok=%v", msg, ok)
	}
}

func TestBuiltins(t *testing.T) {
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		v     Validator
		field Target
		pass  bool
	}{
		{"min length pass", MinLength(3, ""), Target{Raw: "abc", Value: "abc"}, true},
		{"min length counts runes", MinLength(3, ""), Target{Raw: "äöü", Value: "äöü"}, true},
		{"min length fail", MinLength(3, ""), Target{Raw: "ab", Value: "ab"}, false},
		{"max length fail", MaxLength(2, ""), Target{Raw: "abc", Value: "abc"}, false},
		{"pattern anchored", MustPattern(`[a-z]+`, ""), Target{Raw: "abc1", Value: "abc1"}, false},
		{"pattern pass", MustPattern(`[a-z]+`, ""), Target{Raw: "abc", Value: "abc"}, true},
		{"numeric rejects text", Numeric(""), Target{Raw: "abc", Value: float64(0)}, false},
		{"numeric pass", Numeric(""), Target{Raw: "4.5", Value: 4.5}, true},
		{"min pass", Min(18, ""), Target{Raw: "21", Value: float64(21)}, true},
		{"min fail", Min(18, ""), Target{Raw: "12", Value: float64(12)}, false},
		{"max rejects non numeric", Max(10, ""), Target{Raw: "x", Value: float64(0)}, false},
		{"email pass", Email(""), Target{Raw: "ada@example.com", Value: "ada@example.com"}, true},
		{"email rejects display name", Email(""), Target{Raw: "Ada <ada@example.com>", Value: "Ada <ada@example.com>"}, false},
		{"email fail", Email(""), Target{Raw: "nope", Value: "nope"}, false},
		{"url pass", URL(""), Target{Raw: "https://example.com/a", Value: "https://example.com/a"}, true},
		{"url rejects relative", URL(""), Target{Raw: "/a", Value: "/a"}, false},
		{"url rejects ftp", URL(""), Target{Raw: "ftp://example.com", Value: "ftp://example.com"}, false},
		{"identifier object id", Identifier(""), Target{Raw: "507f1f77bcf86cd799439011", Value: "507f1f77bcf86cd799439011"}, true},
		{"identifier uuid", Identifier(""), Target{Raw: "6d73e345-ae88-4e9d-a2ed-89f292e94f7b", Value: "6d73e345-ae88-4e9d-a2ed-89f292e94f7b"}, true},
		{"identifier fail", Identifier(""), Target{Raw: "42", Value: "42"}, false},
		{"one of pass", OneOf([]string{"a", "b"}, ""), Target{Raw: []string{"a", "b"}}, true},
		{"one of fail", OneOf([]string{"a", "b"}, ""), Target{Raw: []string{"a", "c"}}, false},
		{"date pass", Date(""), Target{Raw: "2024-05-01", Value: when}, true},
		{"date fail", Date(""), Target{Raw: "soon", Value: nil}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := run(t, tc.v, tc.field)
			if ok != tc.pass {
				t.Fatalf("expected pass=%v, got pass=%v (%q)", tc.pass, ok, msg)
			}
			if !ok && msg == "" {
				t.Fatalf("expected a default message")
			}
		})
	}
}

func TestMatches(t *testing.T) {
	v := Matches("password", "Passwords differ.")
	form := mapValues{"password": "s3cret"}

	if err := v.Validate(context.Background(), form, Target{Name: "confirm", Value: "s3cret"}); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	err := v.Validate(context.Background(), form, Target{Name: "confirm", Value: "other"})
	if msg, ok := Message(err); !ok || msg != "Passwords differ." {
		t.Fatalf("unexpected result %v", err)
	}
}

func TestPattern_InvalidExpression(t *testing.T) {
	if _, err := Pattern(`(`, ""); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestTargetTexts(t *testing.T) {
	got := Target{Raw: []string{"a", "b"}}.Texts()
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if got := (Target{Raw: "x"}).Texts(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("unexpected texts %v", got)
	}
	if got := (Target{}).Texts(); got != nil {
		t.Fatalf("expected nil texts for absent raw, got %v", got)
	}
}
