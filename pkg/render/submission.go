package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-modelform/internal/markup"
)

// HiddenField is an input rendered after the schema fields, such as a CSRF
// token or a document version.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a request forgery token under the caller's input name
// ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AuthToken carries an authentication token or session hint.
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries the version of the edited document for optimistic
// locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, hidden := range fields {
		if name := strings.TrimSpace(hidden.Name); name != "" {
			out[name] = hidden.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(clean))
	for _, name := range slices.Sorted(maps.Keys(clean)) {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// HiddenInputs renders hidden fields as inputs sorted by name.
func HiddenInputs(fields ...HiddenField) string {
	sorted := SortedHiddenFields(MergeHiddenFields(nil, fields...))
	var b strings.Builder
	for _, hidden := range sorted {
		b.WriteString(`<input type="hidden"`)
		markup.Attr(&b, "name", hidden.Name)
		markup.Attr(&b, "value", hidden.Value)
		b.WriteString(` />`)
	}
	return b.String()
}
