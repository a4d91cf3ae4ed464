package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/document"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func newTestRepository(t *testing.T) *BunRepository {
	t.Helper()

	db, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := CreateTables(context.Background(), db); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return NewBunRepository(db)
}

func storedPost(slug string) *document.Document {
	return &document.Document{
		ID:      uuid.New(),
		Slug:    slug,
		Title:   "Stored Post",
		Date:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Spoiler: "Short teaser.",
		Body:    "# Heading\n",
		Tags:    []string{"go", "sqlite"},
	}
}

func TestBunRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, storedPost("first-post"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected assigned ID")
	}

	bySlug, err := repo.GetBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug.Title != "Stored Post" {
		t.Fatalf("unexpected record %#v", bySlug)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Slug != "first-post" {
		t.Fatalf("unexpected record %#v", byID)
	}
}

func TestBunRepositoryGetBySlugNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetBySlug(context.Background(), "absent")
	var notFound *document.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Key != "absent" {
		t.Fatalf("unexpected key %q", notFound.Key)
	}
}

func TestBunRepositoryUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, storedPost("mutable-post"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = "Updated Title"
	created.Checksum = "abc123"
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Updated Title" || updated.Checksum != "abc123" {
		t.Fatalf("unexpected record %#v", updated)
	}
}

func TestBunRepositoryListAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, storedPost("keep"))
	if err != nil {
		t.Fatalf("Create keep: %v", err)
	}
	if _, err := repo.Create(ctx, storedPost("drop")); err != nil {
		t.Fatalf("Create drop: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}

	drop, err := repo.GetBySlug(ctx, "drop")
	if err != nil {
		t.Fatalf("GetBySlug drop: %v", err)
	}
	if err := repo.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, first.ID); err != nil {
		t.Fatalf("expected surviving record, got %v", err)
	}
}
