package blogcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/document"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/site"
)

func postFile(title, date, spoiler string) *fstest.MapFile {
	return &fstest.MapFile{
		Data: []byte("---\ntitle: " + title + "\ndate: '" + date + "'\nspoiler: " + spoiler + "\n---\n# " + title + "\n"),
	}
}

func newFixture(filesystem fstest.MapFS) (document.Service, *markdown.Service) {
	docs := document.NewService(document.NewMemoryRepository())
	importer := markdown.NewImporter(markdown.ImporterConfig{Documents: docs})
	svc := markdown.NewServiceWithFS(filesystem, markdown.Config{Recursive: true}, nil, importer)
	return docs, svc
}

func TestImportDirectoryHandlerExecute(t *testing.T) {
	filesystem := fstest.MapFS{
		"first-post.md": postFile("First Post", "2024-01-01", "Hello."),
	}
	docs, svc := newFixture(filesystem)

	handler := NewImportDirectoryHandler(svc, nil)
	if err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := docs.GetBySlug(context.Background(), "first-post"); err != nil {
		t.Fatalf("expected imported post, got %v", err)
	}
}

func TestImportDirectoryHandlerValidation(t *testing.T) {
	_, svc := newFixture(fstest.MapFS{})
	handler := NewImportDirectoryHandler(svc, nil)

	err := handler.Execute(context.Background(), ImportDirectoryCommand{})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncDirectoryHandlerRemovesOrphans(t *testing.T) {
	filesystem := fstest.MapFS{
		"keep.md":   postFile("Keep", "2024-01-01", "Stays."),
		"orphan.md": postFile("Orphan", "2024-02-01", "Goes."),
	}
	docs, svc := newFixture(filesystem)
	handler := NewSyncDirectoryHandler(svc, nil)
	ctx := context.Background()

	if err := handler.Execute(ctx, SyncDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	delete(filesystem, "orphan.md")
	if err := handler.Execute(ctx, SyncDirectoryCommand{Directory: ".", DeleteOrphaned: true}); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if _, err := docs.GetBySlug(ctx, "orphan"); !errors.Is(err, document.ErrNotFound) {
		t.Fatalf("expected orphan removed, got %v", err)
	}
	if _, err := docs.GetBySlug(ctx, "keep"); err != nil {
		t.Fatalf("expected kept post to survive: %v", err)
	}
}

func TestBuildSiteHandlerExecute(t *testing.T) {
	docs := document.NewService(document.NewMemoryRepository())
	ctx := context.Background()
	if _, err := docs.Create(ctx, document.CreateDocumentRequest{
		Slug:     "hello",
		Title:    "Hello",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Spoiler:  "First.",
		Body:     "# Hello\n",
		BodyHTML: "<h1>Hello</h1>\n",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	outputDir := filepath.Join(t.TempDir(), "public")
	builder := site.NewService(site.Config{OutputDir: outputDir}, site.Dependencies{Documents: docs})

	handler := NewBuildSiteHandler(builder, nil)
	if err := handler.Execute(ctx, BuildSiteCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "hello", "index.html")); err != nil {
		t.Fatalf("expected generated post page: %v", err)
	}
}
