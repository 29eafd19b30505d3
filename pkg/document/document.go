// Package document defines the surface this library consumes from a
// document-mapping layer: instances with schema-checked attribute access, a
// persistence store, and a named blob store for uploaded files. Concrete
// backends live in the blob and mongostore subpackages; MemStore backs tests
// and demos.
package document

import (
	"fmt"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// Document is one mutable instance conforming to a schema. An embedded
// instance lives inside a parent document's attribute map rather than being
// persisted on its own.
type Document struct {
	schema *schema.Schema
	id     string
	attrs  map[string]any
}

// New returns an empty instance of the given schema.
func New(s *schema.Schema) *Document {
	return &Document{schema: s, attrs: make(map[string]any)}
}

// FromMap builds an instance pre-populated with the supplied attributes.
// Undeclared attribute names are rejected.
func FromMap(s *schema.Schema, attrs map[string]any) (*Document, error) {
	doc := New(s)
	for name, value := range attrs {
		if err := doc.Set(name, value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Schema returns the schema this instance conforms to.
func (d *Document) Schema() *schema.Schema { return d.schema }

// ID returns the persisted identifier, empty for unsaved instances.
func (d *Document) ID() string { return d.id }

// SetID assigns the persisted identifier. Stores call this on first save.
func (d *Document) SetID(id string) { d.id = id }

// Get returns the current value of a declared attribute. Unset attributes
// yield the descriptor default.
func (d *Document) Get(name string) (any, bool) {
	f, ok := d.schema.Field(name)
	if !ok {
		return nil, false
	}
	if v, set := d.attrs[name]; set {
		return v, true
	}
	return f.Default, true
}

// Set assigns a declared attribute. Setting an attribute the schema does not
// declare is an error.
func (d *Document) Set(name string, value any) error {
	if _, ok := d.schema.Field(name); !ok {
		return fmt.Errorf("document: schema %s declares no field %q", d.schema.Name(), name)
	}
	d.attrs[name] = value
	return nil
}

// ToMap extracts the set attributes, optionally restricted to include and
// filtered by exclude. Suitable as a form's initial values.
func (d *Document) ToMap(include, exclude []string) map[string]any {
	out := make(map[string]any, len(d.attrs))
	for _, f := range d.schema.Fields() {
		if len(include) > 0 && !contains(include, f.Name) {
			continue
		}
		if contains(exclude, f.Name) {
			continue
		}
		if v, set := d.attrs[f.Name]; set {
			out[f.Name] = v
		}
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
