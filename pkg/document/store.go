package document

import (
	"context"
	"errors"
	"io"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// ErrNotFound is returned by stores when an identifier resolves to nothing.
var ErrNotFound = errors.New("document: not found")

// Finder resolves identifiers against persisted documents. Reference form
// fields only need this half of the store.
type Finder interface {
	Get(ctx context.Context, s *schema.Schema, id string) (*Document, error)
	Exists(ctx context.Context, s *schema.Schema, id string) (bool, error)
}

// Store persists document instances. Save assigns an identifier on first
// save and overwrites on subsequent saves.
type Store interface {
	Finder
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, s *schema.Schema, id string) error
	List(ctx context.Context, s *schema.Schema) ([]*Document, error)
}

// BlobStore stores uploaded file content by name. Put never overwrites: a
// name already in use is disambiguated with a numeric suffix before the
// extension, and the stored name is returned.
type BlobStore interface {
	Put(ctx context.Context, name string, content io.Reader) (string, error)
	Exists(ctx context.Context, name string) (bool, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
