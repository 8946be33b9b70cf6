// Package markup holds the escaping and attribute helpers every widget and
// field fragment is written through.
package markup

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var escaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`<`, "&lt;",
	`>`, "&gt;",
	`'`, "&#39;",
)

// Escape makes value safe for use as HTML text or inside a double-quoted
// attribute.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Attr appends ` name="value"` with the value escaped. Empty names are ignored.
func Attr(b *strings.Builder, name, value string) {
	if name == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(Escape(value))
	b.WriteByte('"')
}

// Flag appends a boolean attribute using the XHTML-compatible
// `name="name"` form.
func Flag(b *strings.Builder, name string, on bool) {
	if on {
		Attr(b, name, name)
	}
}

// Classes appends a class attribute when at least one class is present.
func Classes(b *strings.Builder, classes []string) {
	if len(classes) == 0 {
		return
	}
	Attr(b, "class", strings.Join(classes, " "))
}

// Humanize converts a field name such as "first_name" or "firstName" into a
// label ("First name").
func Humanize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteByte(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// SanitizeHelp strips everything but a small set of inline elements from
// schema-supplied help text.
func SanitizeHelp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
