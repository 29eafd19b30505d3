package document

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// MemStore is an in-memory Store keyed by schema name and document id. It
// backs tests and demos; production code plugs a real mapping-layer adapter.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]*Document
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]map[string]*Document)}
}

var _ Store = (*MemStore)(nil)

// Save stores a snapshot of the instance, assigning a fresh id when needed.
func (m *MemStore) Save(_ context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID() == "" {
		doc.SetID(uuid.NewString())
	}
	name := doc.Schema().Name()
	if m.docs[name] == nil {
		m.docs[name] = make(map[string]*Document)
	}
	m.docs[name][doc.ID()] = snapshot(doc)
	return nil
}

// Get returns a copy of the stored instance.
func (m *MemStore) Get(_ context.Context, s *schema.Schema, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.docs[s.Name()][id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(stored), nil
}

// Exists reports whether the identifier is stored for the schema.
func (m *MemStore) Exists(_ context.Context, s *schema.Schema, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[s.Name()][id]
	return ok, nil
}

// Delete removes the stored instance, if any.
func (m *MemStore) Delete(_ context.Context, s *schema.Schema, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[s.Name()], id)
	return nil
}

// List returns copies of every stored instance of the schema.
func (m *MemStore) List(_ context.Context, s *schema.Schema) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Document, 0, len(m.docs[s.Name()]))
	for _, doc := range m.docs[s.Name()] {
		out = append(out, snapshot(doc))
	}
	return out, nil
}

func snapshot(doc *Document) *Document {
	copied := New(doc.Schema())
	copied.SetID(doc.ID())
	for name, value := range doc.attrs {
		copied.attrs[name] = value
	}
	return copied
}
