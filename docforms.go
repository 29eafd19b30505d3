// Package docforms generates and validates HTML forms from document
// schemas: a field generator mapping schema kinds onto form fields, a
// document form that binds submitted data, validates it exhaustively and
// writes it back onto instances, and an embedded-document form editing
// nested documents in place.
//
// The root package re-exports the common entry points; the full surface
// lives under pkg/.
package docforms

import (
	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/forms"
	"github.com/goliatone/go-docforms/pkg/generator"
	"github.com/goliatone/go-docforms/pkg/schema"
)

// Config is the project-wide generator configuration. Set it explicitly at
// wiring time; per-form overrides go through Options.Generator.
type Config = generator.Config

// Options configures a single form.
type Options = forms.Options

// EmbeddedOptions configures an embedded-document form.
type EmbeddedOptions = forms.EmbeddedOptions

// DocumentForm edits a top-level document instance.
type DocumentForm = forms.DocumentForm

// EmbeddedDocumentForm edits a document held inside a parent's field.
type EmbeddedDocumentForm = forms.EmbeddedDocumentForm

// NewGenerator builds a field generator from a project-wide Config; the
// configuration is validated here, at definition time.
func NewGenerator(cfg Config) (*generator.Generator, error) {
	return generator.New(cfg)
}

// New builds a form over the schema. It is the simplest entry point for
// callers that want the default field mapping.
func New(s *schema.Schema, opts Options) (*forms.DocumentForm, error) {
	return forms.New(s, opts)
}

// NewEmbedded builds a form over the embedded schema of the parent's named
// field. Saving mutates the parent in memory only.
func NewEmbedded(parent *document.Document, fieldName string, opts EmbeddedOptions) (*forms.EmbeddedDocumentForm, error) {
	return forms.NewEmbedded(parent, fieldName, opts)
}
