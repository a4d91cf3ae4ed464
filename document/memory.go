package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*Document
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory document repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		documents: make(map[uuid.UUID]*Document),
		slugIndex: make(map[string]uuid.UUID),
	}
}

var _ Repository = (*MemoryRepository)(nil)

// Create inserts the supplied document.
func (m *MemoryRepository) Create(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.slugIndex[record.Slug]; exists {
		return nil, ErrSlugExists
	}

	copied := cloneDocument(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := time.Now().UTC()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now

	m.documents[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDocument(copied), nil
}

// Update replaces the stored record matching the document's ID.
func (m *MemoryRepository) Update(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.documents[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: record.ID.String()}
	}

	copied := cloneDocument(record)
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now().UTC()

	if existing.Slug != copied.Slug {
		delete(m.slugIndex, existing.Slug)
	}
	m.documents[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDocument(copied), nil
}

// GetByID retrieves a document by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.documents[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(rec), nil
}

// GetBySlug retrieves a document by slug, returning NotFoundError when absent.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: slug}
	}
	return cloneDocument(m.documents[id]), nil
}

// List returns every stored document.
func (m *MemoryRepository) List(_ context.Context) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Document, 0, len(m.documents))
	for _, rec := range m.documents {
		out = append(out, cloneDocument(rec))
	}
	return out, nil
}

// Delete removes a document by identifier.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.documents[id]
	if !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.documents, id)
	return nil
}

func cloneDocument(in *Document) *Document {
	if in == nil {
		return nil
	}
	out := *in
	out.Tags = append([]string(nil), in.Tags...)
	if in.DeletedAt != nil {
		deleted := *in.DeletedAt
		out.DeletedAt = &deleted
	}
	return &out
}
