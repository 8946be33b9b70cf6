package widgets

import (
	"regexp"
	"sort"
	"strings"
)

var (
	dataAttrPattern = regexp.MustCompile(`^data-[a-z][a-z0-9-]*$`)
	ariaAttrPattern = regexp.MustCompile(`^aria-[a-z]+$`)
)

// Attribute names that may be passed through from schema options. Event
// handlers and anything not listed here are dropped.
var legalAttrs = map[string]struct{}{
	"accept": {}, "alt": {}, "autocomplete": {}, "autocorrect": {},
	"autofocus": {}, "autosuggest": {}, "checked": {}, "contenteditable": {},
	"accesskey": {}, "contextmenu": {}, "dir": {}, "draggable": {},
	"dropzone": {}, "spellcheck": {}, "tabindex": {}, "title": {},
	"dirname": {}, "disabled": {}, "list": {}, "max": {}, "maxlength": {},
	"min": {}, "multiple": {}, "novalidate": {}, "pattern": {},
	"placeholder": {}, "readonly": {}, "required": {}, "size": {},
	"step": {}, "style": {}, "form": {}, "formaction": {}, "formenctype": {},
	"formmethod": {}, "formnovalidate": {}, "formtarget": {}, "height": {},
	"width": {},
}

// Identity attributes are owned by the field and never taken from options.
var identityAttrs = map[string]struct{}{
	"id": {}, "name": {}, "class": {}, "classes": {},
}

type attribute struct {
	name  string
	value string
}

// AllowedAttr reports whether name may be emitted on rendered inputs. Leading
// underscores are ignored so private-prefixed option keys match too.
func AllowedAttr(name string) bool {
	_, ok := normaliseAttr(name)
	return ok
}

func normaliseAttr(name string) (string, bool) {
	key := strings.ToLower(strings.TrimLeft(strings.TrimSpace(name), "_"))
	if key == "" {
		return "", false
	}
	if _, ok := identityAttrs[key]; ok {
		return "", false
	}
	if _, ok := legalAttrs[key]; ok {
		return key, true
	}
	if dataAttrPattern.MatchString(key) || ariaAttrPattern.MatchString(key) {
		return key, true
	}
	return "", false
}

// filterAttrs drops non-whitelisted names and returns the survivors sorted by
// name so output is deterministic.
func filterAttrs(attrs map[string]string) []attribute {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]attribute, 0, len(attrs))
	seen := make(map[string]struct{}, len(attrs))
	for _, raw := range keys {
		value := attrs[raw]
		name, ok := normaliseAttr(raw)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, attribute{name: name, value: value})
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
