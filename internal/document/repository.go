package document

import (
	"context"

	"github.com/google/uuid"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/document"
)

// NewDocumentRepository creates a go-repository-bun repository for stored posts.
func NewDocumentRepository(db *bun.DB) repository.Repository[*document.Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*document.Document]{
		NewRecord: func() *document.Document { return &document.Document{} },
		GetID: func(d *document.Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *document.Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(d *document.Document) string {
			return d.Slug
		},
	})
}

// CreateTables creates the documents table when it does not exist yet. SQLite
// hosts call this during bootstrap instead of running managed migrations.
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*document.Document)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
