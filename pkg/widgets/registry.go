package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// Built-in widget names resolvable through the registry.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetHidden   = "hidden"
	WidgetPassword = "password"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
)

// Builder constructs the widget for a field descriptor.
type Builder func(f *schema.Field) Widget

// Matcher decides whether a registered widget should handle the field when
// the descriptor carries no explicit widget name.
type Matcher func(f *schema.Field) bool

type rule struct {
	name     string
	priority int
	build    Builder
	match    Matcher
}

// Registry resolves a field descriptor to a rendering widget: an explicit
// descriptor hint looks up by name, otherwise registered matchers apply with
// higher priority winning and ties falling back to registration order. An
// empty registry never resolves a widget, leaving the kind's default in
// place.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widgets registered.
// The built-ins carry no matchers; they only resolve by name.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.Register(WidgetText, 0, func(*schema.Field) Widget { return NewTextInput() }, nil)
	reg.Register(WidgetTextarea, 0, func(*schema.Field) Widget { return &Textarea{} }, nil)
	reg.Register(WidgetHidden, 0, func(*schema.Field) Widget { return &HiddenInput{} }, nil)
	reg.Register(WidgetPassword, 0, func(*schema.Field) Widget { return &TextInput{Type: "password"} }, nil)
	reg.Register(WidgetSelect, 0, func(f *schema.Field) Widget { return &Select{Choices: f.Choices} }, nil)
	reg.Register(WidgetCheckbox, 0, func(*schema.Field) Widget { return &CheckboxInput{} }, nil)
	return reg
}

// Register adds a named widget with an optional matcher. Higher priority
// values take precedence during matching; a duplicate name replaces the
// earlier registration for name lookup.
func (r *Registry) Register(name string, priority int, build Builder, match Matcher) {
	if r == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		build:    build,
		match:    match,
	})
}

// Names returns the registered widget names, first registration order
// de-duplicated, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.rules))
	names := make([]string, 0, len(r.rules))
	for _, rl := range r.rules {
		if seen[rl.name] {
			continue
		}
		seen[rl.name] = true
		names = append(names, rl.name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the widget for the descriptor. The descriptor's explicit
// Widget name wins; otherwise the highest-priority matching rule applies,
// registration order breaking ties. The boolean reports whether anything
// resolved.
func (r *Registry) Resolve(f *schema.Field) (Widget, bool) {
	if r == nil || f == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hint := strings.TrimSpace(f.Widget); hint != "" {
		// Latest registration of the name wins.
		for i := len(r.rules) - 1; i >= 0; i-- {
			if r.rules[i].name == hint {
				return r.rules[i].build(f), true
			}
		}
		return nil, false
	}

	var best *rule
	for i := range r.rules {
		rl := &r.rules[i]
		if rl.match == nil || !rl.match(f) {
			continue
		}
		if best == nil || rl.priority > best.priority {
			best = rl
		}
	}
	if best == nil {
		return nil, false
	}
	return best.build(f), true
}
