package field

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-modelform/pkg/validate"
)

// Date layouts accepted by date fields, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Parse converts a raw submitted value into the kind's typed value. It never
// fails: absent or malformed input yields the kind's default ("" for text
// kinds, 0 for numbers, false for booleans, nil for dates, identifiers and
// uploads).
func Parse(kind Kind, raw any) any {
	switch kind {
	case KindNumber:
		return parseNumber(raw)
	case KindBoolean:
		return parseBool(raw)
	case KindDate:
		return parseDate(raw)
	case KindIdentifier:
		text := strings.TrimSpace(validate.RawText(raw))
		if text == "" || !validate.IsIdentifier(text) {
			return nil
		}
		return text
	case KindFile, KindImage:
		return parseUpload(raw)
	default:
		return validate.RawText(raw)
	}
}

func parseNumber(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(validate.RawText(raw)), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(raw any) bool {
	if v, ok := raw.(bool); ok {
		return v
	}
	text := strings.ToLower(strings.TrimSpace(validate.RawText(raw)))
	switch text {
	case "on", "yes", "y":
		return true
	case "":
		return false
	}
	b, err := strconv.ParseBool(text)
	return err == nil && b
}

func parseDate(raw any) any {
	if v, ok := raw.(time.Time); ok {
		return v
	}
	text := strings.TrimSpace(validate.RawText(raw))
	if text == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return nil
}

func parseUpload(raw any) any {
	switch v := raw.(type) {
	case *multipart.FileHeader:
		if v == nil {
			return nil
		}
		return v
	case []*multipart.FileHeader:
		if len(v) == 0 || v[0] == nil {
			return nil
		}
		return v[0]
	}
	return nil
}

// parseList parses every element of a repeated submission.
func parseList(kind Kind, raw any) []any {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case []any:
		items = v
	default:
		items = []any{v}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, Parse(kind, item))
	}
	return out
}

// IsEmpty reports whether raw counts as an absent submission: nil, the empty
// string, or a list with no non-empty element.
func IsEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		for _, s := range v {
			if s != "" {
				return false
			}
		}
		return true
	case []any:
		for _, item := range v {
			if !IsEmpty(item) {
				return false
			}
		}
		return true
	case *multipart.FileHeader:
		return v == nil
	case []*multipart.FileHeader:
		return len(v) == 0
	}
	return false
}
