package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration shared by the blog CLI entry points.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	StorageDriver  string
	StorageDSN     string
	OutputDir      string
	BaseURL        string
	SiteTitle      string
	Description    string
	SiteEnabled    bool
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the blog module with the services the CLI commands use.
type Module struct {
	Module   *blog.Module
	Markdown interfaces.MarkdownService
	Site     blog.SiteService
	Logger   interfaces.Logger
}

// BuildModule constructs a blog module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	if driver := strings.TrimSpace(opts.StorageDriver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.StorageDSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}

	cfg.Site.Enabled = opts.SiteEnabled
	if outputDir := strings.TrimSpace(opts.OutputDir); outputDir != "" {
		cfg.Site.OutputDir = outputDir
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.Site.BaseURL = baseURL
	}
	if title := strings.TrimSpace(opts.SiteTitle); title != "" {
		cfg.Site.Title = title
	}
	if description := strings.TrimSpace(opts.Description); description != "" {
		cfg.Site.Description = description
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	service := module.Markdown()
	if service == nil {
		module.Close()
		return nil, fmt.Errorf("markdown service not configured; ensure markdown is enabled")
	}

	return &Module{
		Module:   module,
		Markdown: service,
		Site:     module.Site(),
		Logger:   commands.CommandLogger(module.Container().LoggerProvider(), "blog"),
	}, nil
}

// Close releases the wrapped module resources.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}
