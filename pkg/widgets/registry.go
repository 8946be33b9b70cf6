package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Hint summarises the field facts widget selection depends on.
type Hint struct {
	// FieldKind is the field's semantic kind ("string", "boolean", ...).
	FieldKind string
	// Widget is an explicit widget requested by the schema, if any.
	Widget   string
	Choices  int
	Multiple bool
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(hint Hint) bool

type rule struct {
	kind     Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields from explicit hints, registered
// matchers and finally the per-kind defaults. Higher priority wins; ties fall
// back to registration order.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	defaults map[string]Kind
}

// Default widget per field kind, used when no matcher claims the field.
var kindDefaults = map[string]Kind{
	"string":     KindText,
	"password":   KindPassword,
	"captcha":    KindCaptcha,
	"email":      KindEmail,
	"url":        KindURL,
	"number":     KindNumber,
	"boolean":    KindCheckbox,
	"date":       KindDate,
	"file":       KindFile,
	"image":      KindFile,
	"identifier": KindText,
	"hidden":     KindHidden,
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{defaults: make(map[string]Kind, len(kindDefaults))}
	for kind, widget := range kindDefaults {
		reg.defaults[kind] = widget
	}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for the widget kind with the provided priority.
// Higher priority values take precedence.
func (r *Registry) Register(kind Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil || !Known(kind) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// SetDefault overrides the fallback widget for a field kind.
func (r *Registry) SetDefault(fieldKind string, kind Kind) {
	if r == nil || !Known(kind) {
		return
	}
	trimmed := strings.TrimSpace(fieldKind)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defaults == nil {
		r.defaults = make(map[string]Kind)
	}
	r.defaults[trimmed] = kind
}

// Resolve returns the widget kind for hint. Explicit widget names are
// honoured before matcher evaluation; unknown explicit names are ignored.
// Fields no matcher or default claims get a text input.
func (r *Registry) Resolve(hint Hint) Kind {
	if explicit := Kind(strings.TrimSpace(hint.Widget)); explicit != "" && Known(explicit) {
		return explicit
	}
	if r == nil {
		if kind, ok := kindDefaults[hint.FieldKind]; ok {
			return kind
		}
		return KindText
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	fallback, ok := r.defaults[hint.FieldKind]
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(hint) {
			return entry.kind
		}
	}
	if ok {
		return fallback
	}
	return KindText
}

func (r *Registry) registerBuiltins() {
	r.Register(KindHidden, 100, func(hint Hint) bool {
		return hint.FieldKind == "hidden"
	})

	r.Register(KindMultipleSelect, 80, func(hint Hint) bool {
		return hint.Choices > 0 && hint.Multiple
	})

	r.Register(KindSelect, 70, func(hint Hint) bool {
		return hint.Choices > 0
	})
}
