package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("blog config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("blog config: storage dsn is required for the sqlite driver")
var ErrCacheTTLInvalid = errors.New("blog config: cache ttl must be zero or positive")
var ErrMarkdownContentDirRequired = errors.New("blog config: markdown content directory is required when markdown is enabled")
var ErrSiteOutputDirRequired = errors.New("blog config: site output directory is required when the generator is enabled")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature toggles and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Site     SiteConfig
	Logging  LoggingConfig
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	// Driver is "sqlite" for a bun-backed store or "memory" for the in-memory repository.
	Driver string
	DSN    string
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown ingestion.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
}

// SiteConfig captures behaviour for the static site generator.
type SiteConfig struct {
	Enabled         bool
	OutputDir       string
	BaseURL         string
	Title           string
	Description     string
	CleanBuild      bool
	GenerateFeeds   bool
	GenerateSitemap bool
	GenerateRobots  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a filesystem-backed blog.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			Enabled:    true,
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Site: SiteConfig{
			Enabled:         true,
			OutputDir:       "public",
			CleanBuild:      true,
			GenerateFeeds:   true,
			GenerateSitemap: true,
			GenerateRobots:  false,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Driver) {
	case "sqlite":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	case "", "memory":
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Markdown.Enabled && strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	if cfg.Site.Enabled && strings.TrimSpace(cfg.Site.OutputDir) == "" {
		return ErrSiteOutputDirRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider != "noop" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
