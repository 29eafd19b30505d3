// Package blob stores uploaded file content through github.com/viant/afs, so
// the backing location can be a local directory, mem:// in tests, or any
// scheme afs understands.
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/goliatone/go-docforms/pkg/document"
)

// Store implements document.BlobStore over an afs service rooted at baseURL.
type Store struct {
	fs      afs.Service
	baseURL string
}

// New returns a blob store rooted at baseURL, e.g. "file:///var/uploads" or
// "mem://localhost/uploads".
func New(baseURL string) *Store {
	return &Store{fs: afs.New(), baseURL: strings.TrimRight(baseURL, "/")}
}

var _ document.BlobStore = (*Store)(nil)

// Put uploads content under name, renaming on collision, and returns the
// stored name.
func (s *Store) Put(ctx context.Context, name string, content io.Reader) (string, error) {
	stored, err := document.UniqueName(ctx, name, s.Exists)
	if err != nil {
		return "", fmt.Errorf("blob: resolve name %q: %w", name, err)
	}
	if err := s.fs.Upload(ctx, s.join(stored), file.DefaultFileOsMode, content); err != nil {
		return "", fmt.Errorf("blob: upload %q: %w", stored, err)
	}
	return stored, nil
}

// Exists reports whether a blob is stored under name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.fs.Exists(ctx, s.join(name))
	if err != nil {
		return false, fmt.Errorf("blob: check %q: %w", name, err)
	}
	return ok, nil
}

// Open returns the stored content for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	reader, err := s.fs.OpenURL(ctx, s.join(name))
	if err != nil {
		return nil, fmt.Errorf("blob: open %q: %w", name, err)
	}
	return reader, nil
}

func (s *Store) join(name string) string {
	return url.Join(s.baseURL, name)
}
