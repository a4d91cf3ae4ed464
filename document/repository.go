package document

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts document persistence so the service can run against
// the bun-backed store or the in-memory implementation interchangeably.
type Repository interface {
	Create(ctx context.Context, record *Document) (*Document, error)
	Update(ctx context.Context, record *Document) (*Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	GetBySlug(ctx context.Context, slug string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
