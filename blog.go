package blog

import (
	"github.com/goliatone/go-blog/document"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/site"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/uptrace/bun"
)

// DocumentService exports the document store contract for consumers of the blog package.
type DocumentService = document.Service

// MarkdownService exports the markdown pipeline contract.
type MarkdownService = interfaces.MarkdownService

// SiteService exports the static site generator contract.
type SiteService = site.Service

// SiteBuildOptions exports the generator run options.
type SiteBuildOptions = site.BuildOptions

// SiteBuildResult exports the generator run report.
type SiteBuildResult = site.BuildResult

// Document exports the stored post model.
type Document = document.Document

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document store service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Markdown returns the markdown service when configured; nil when disabled.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Site returns the configured static site generator.
func (m *Module) Site() SiteService {
	return m.container.SiteService()
}

// Logger returns a module-scoped logger backed by the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}

// DB exposes the bun handle for host integrations; nil for memory storage.
func (m *Module) DB() *bun.DB {
	return m.container.DB()
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
