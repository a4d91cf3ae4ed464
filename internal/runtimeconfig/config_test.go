package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidateStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "postgres"
	if err := cfg.Validate(); !errors.Is(err, ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Storage.DSN = " "
	if err := cfg.Validate(); !errors.Is(err, ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Storage = StorageConfig{Driver: "memory"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected memory driver without dsn to validate, got %v", err)
	}
}

func TestValidateMarkdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Markdown.ContentDir = ""
	if err := cfg.Validate(); !errors.Is(err, ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}

	cfg.Markdown.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled markdown to skip the check, got %v", err)
	}
}

func TestValidateSite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Site.OutputDir = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrSiteOutputDirRequired) {
		t.Fatalf("expected ErrSiteOutputDirRequired, got %v", err)
	}
}

func TestValidateCacheTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.DefaultTTL = -time.Second
	if err := cfg.Validate(); !errors.Is(err, ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
