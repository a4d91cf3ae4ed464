package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/site"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type stubMarkdownService struct {
	importCalls int
}

func (s *stubMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) Import(context.Context, *interfaces.Document, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return nil, nil
}

func (s *stubMarkdownService) ImportDirectory(context.Context, string, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	s.importCalls++
	return &interfaces.ImportResult{}, nil
}

func (s *stubMarkdownService) Sync(context.Context, string, interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	return nil, nil
}

type stubSiteService struct {
	buildCalls    int
	includeDrafts bool
	dryRun        bool
}

func (s *stubSiteService) Build(_ context.Context, opts site.BuildOptions) (*site.BuildResult, error) {
	s.buildCalls++
	s.includeDrafts = opts.IncludeDrafts
	s.dryRun = opts.DryRun
	return &site.BuildResult{}, nil
}

func (s *stubSiteService) Clean(context.Context) error {
	return nil
}

func TestRunBuildImportsThenBuilds(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	markdownSvc := &stubMarkdownService{}
	siteSvc := &stubSiteService{}
	var captured bootstrap.Options
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts
		return &bootstrap.Module{
			Markdown: markdownSvc,
			Site:     siteSvc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runBuild([]string{
		"-output-dir", "dist",
		"-base-url", "https://example.com",
		"-include-drafts",
	}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}
	if markdownSvc.importCalls != 1 {
		t.Fatalf("expected import before build, got %d calls", markdownSvc.importCalls)
	}
	if siteSvc.buildCalls != 1 {
		t.Fatalf("expected build to be called once, got %d", siteSvc.buildCalls)
	}
	if !siteSvc.includeDrafts {
		t.Fatal("expected include-drafts flag to reach the generator")
	}
	if !captured.SiteEnabled {
		t.Fatal("expected site generation to be enabled")
	}
	if captured.OutputDir != "dist" {
		t.Fatalf("expected output dir dist, got %s", captured.OutputDir)
	}
	if captured.BaseURL != "https://example.com" {
		t.Fatalf("unexpected base URL %s", captured.BaseURL)
	}
}

func TestRunBuildSkipImport(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	markdownSvc := &stubMarkdownService{}
	siteSvc := &stubSiteService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Markdown: markdownSvc,
			Site:     siteSvc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runBuild([]string{"-skip-import", "-dry-run"}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}
	if markdownSvc.importCalls != 0 {
		t.Fatalf("expected no import with -skip-import, got %d calls", markdownSvc.importCalls)
	}
	if !siteSvc.dryRun {
		t.Fatal("expected dry run flag to reach the generator")
	}
}
