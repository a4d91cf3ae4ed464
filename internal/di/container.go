package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-blog/document"
	internaldocument "github.com/goliatone/go-blog/internal/document"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/site"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container wires the blog runtime dependencies from configuration plus
// optional overrides.
type Container struct {
	Config runtimeconfig.Config

	bunDB   *bun.DB
	ownedDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	documentRepo document.Repository
	documentSvc  document.Service
	parser       interfaces.MarkdownParser
	markdownSvc  interfaces.MarkdownService
	siteWriter   site.ArtifactWriter
	siteSvc      site.Service
}

// Option customises container wiring before defaults are applied.
type Option func(*Container)

// WithBunDB injects an existing bun database handle. The container will not
// close an injected handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache provider.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDocumentRepository overrides the default document repository binding.
func WithDocumentRepository(repo document.Repository) Option {
	return func(c *Container) {
		c.documentRepo = repo
	}
}

// WithDocumentService overrides the default document service binding.
func WithDocumentService(svc document.Service) Option {
	return func(c *Container) {
		c.documentSvc = svc
	}
}

// WithMarkdownParser overrides the default Goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithSiteWriter overrides the artifact writer used by the site generator.
func WithSiteWriter(writer site.ArtifactWriter) Option {
	return func(c *Container) {
		c.siteWriter = writer
	}
}

// WithSiteService overrides the default site generator binding.
func WithSiteService(svc site.Service) Option {
	return func(c *Container) {
		c.siteSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}

	if c.documentSvc == nil {
		c.documentSvc = document.NewService(c.documentRepo,
			document.WithLogger(logging.DocumentsLogger(c.loggerProvider)))
	}

	if err := c.configureMarkdown(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureSite()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	switch provider := strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)); provider {
	case "noop":
		return nil
	case "console", "gologger":
		format := c.Config.Logging.Format
		if format == "" && provider == "console" {
			format = "console"
		}
		adapted, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     append([]string(nil), c.Config.Logging.Focus...),
		})
		if err != nil {
			return err
		}
		c.loggerProvider = adapted
		return nil
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, provider)
	}
}

func (c *Container) configureStorage() error {
	if c.documentRepo != nil {
		return nil
	}

	driver := strings.ToLower(strings.TrimSpace(c.Config.Storage.Driver))
	if driver != "sqlite" && c.bunDB == nil {
		c.documentRepo = document.NewMemoryRepository()
		return nil
	}

	if c.bunDB == nil {
		sqlDB, err := sql.Open("sqlite3", c.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("di: open sqlite database: %w", err)
		}
		c.bunDB = bun.NewDB(sqlDB, sqlitedialect.New())
		c.ownedDB = true
	}

	if err := internaldocument.CreateTables(context.Background(), c.bunDB); err != nil {
		c.Close()
		return fmt.Errorf("di: create document tables: %w", err)
	}

	c.configureCacheDefaults()
	c.documentRepo = internaldocument.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil || !c.Config.Markdown.Enabled {
		return nil
	}

	importer := markdown.NewImporter(markdown.ImporterConfig{
		Documents: c.documentSvc,
		Logger:    logging.MarkdownLogger(c.loggerProvider),
	})

	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Markdown.ContentDir,
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions:     append([]string(nil), c.Config.Markdown.Parser.Extensions...),
			HardWraps:      c.Config.Markdown.Parser.HardWraps,
			SafeMode:       c.Config.Markdown.Parser.SafeMode,
			HighlightStyle: c.Config.Markdown.Parser.HighlightStyle,
		},
	}, c.parser, importer)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureSite() {
	if c.siteSvc != nil {
		return
	}
	if !c.Config.Site.Enabled {
		c.siteSvc = site.NewDisabledService()
		return
	}
	c.siteSvc = site.NewService(site.Config{
		OutputDir:       c.Config.Site.OutputDir,
		BaseURL:         c.Config.Site.BaseURL,
		Title:           c.Config.Site.Title,
		Description:     c.Config.Site.Description,
		CleanBuild:      c.Config.Site.CleanBuild,
		GenerateFeeds:   c.Config.Site.GenerateFeeds,
		GenerateSitemap: c.Config.Site.GenerateSitemap,
		GenerateRobots:  c.Config.Site.GenerateRobots,
	}, site.Dependencies{
		Documents: c.documentSvc,
		Writer:    c.siteWriter,
		Logger:    logging.SiteLogger(c.loggerProvider),
	})
}

// DocumentService returns the configured document store service.
func (c *Container) DocumentService() document.Service {
	return c.documentSvc
}

// MarkdownService returns the configured markdown service; nil when disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// SiteService returns the configured site generator.
func (c *Container) SiteService() site.Service {
	return c.siteSvc
}

// LoggerProvider exposes the logger provider; nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a module-scoped logger backed by the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// DB exposes the bun handle for host integrations; nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Close releases resources owned by the container. Injected database handles
// stay open.
func (c *Container) Close() error {
	if c == nil || !c.ownedDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownedDB = false
	return err
}
