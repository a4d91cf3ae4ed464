package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/document"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the site generator feature is disabled.
	ErrServiceDisabled   = errors.New("site: service disabled")
	errDocumentsRequired = errors.New("site: document service is required")
	errOutputDirRequired = errors.New("site: output directory is required")
)

// Service describes the static blog generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	Title           string
	Description     string
	CleanBuild      bool
	GenerateFeeds   bool
	GenerateSitemap bool
	GenerateRobots  bool
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	IncludeDrafts bool
	DryRun        bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt int
	FeedsBuilt int
	Outputs    []string
	Duration   time.Duration
	DryRun     bool
	Errors     []error
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Documents document.Service
	Writer    ArtifactWriter
	Logger    interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration
// and dependencies. When no writer is supplied, outputs land on the local
// filesystem under Config.OutputDir.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.Writer == nil {
		deps.Writer = NewFilesystemWriter()
	}
	return &service{
		cfg:       cfg,
		deps:      deps,
		templates: defaultTemplates(),
		now:       time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg       Config
	deps      Dependencies
	templates *templateSet
	now       func() time.Time
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Documents == nil {
		return nil, errDocumentsRequired
	}
	if strings.TrimSpace(s.cfg.OutputDir) == "" {
		return nil, errOutputDirRequired
	}

	start := s.now()
	generatedAt := start.UTC()

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	records, err := s.deps.Documents.List(ctx, document.ListOptions{
		IncludeDrafts: opts.IncludeDrafts,
	})
	if err != nil {
		return nil, fmt.Errorf("site: list documents: %w", err)
	}

	meta := SiteMetadata{
		Title:       siteTitle(s.cfg),
		Description: s.cfg.Description,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
		GeneratedAt: generatedAt,
	}
	posts := postViews(meta, records)

	result := &BuildResult{DryRun: opts.DryRun}
	baseDir := strings.TrimRight(strings.TrimSpace(s.cfg.OutputDir), "/")
	writer := s.deps.Writer
	dirCache := map[string]struct{}{}

	write := func(rel, contentType string, content []byte) error {
		full := joinOutputPath(baseDir, rel)
		result.Outputs = append(result.Outputs, full)
		if opts.DryRun {
			return nil
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(full)); err != nil {
			return err
		}
		return writer.WriteFile(ctx, WriteFileRequest{
			Path:        full,
			Content:     content,
			ContentType: contentType,
		})
	}

	indexHTML, err := s.templates.renderIndex(meta, posts)
	if err != nil {
		return nil, err
	}
	if err := write("index.html", "text/html; charset=utf-8", indexHTML); err != nil {
		return result, err
	}
	result.PagesBuilt++

	for _, post := range posts {
		select {
		case <-ctx.Done():
			result.Duration = s.now().Sub(start)
			return result, ctx.Err()
		default:
		}

		pageHTML, renderErr := s.templates.renderPost(meta, post)
		if renderErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("site: render post %s: %w", post.Slug, renderErr))
			continue
		}
		if err := write(path.Join(post.Slug, "index.html"), "text/html; charset=utf-8", pageHTML); err != nil {
			result.Duration = s.now().Sub(start)
			return result, err
		}
		result.PagesBuilt++

		logging.WithFields(s.deps.Logger, map[string]any{
			"slug":  post.Slug,
			"route": post.Route,
		}).Debug("site.build.post_rendered")
	}

	if s.cfg.GenerateFeeds {
		rss := buildRSSFeed(meta, posts, generatedAt)
		if err := write("feed.xml", "application/rss+xml", []byte(rss)); err != nil {
			return result, err
		}
		result.FeedsBuilt++

		atom := buildAtomFeed(meta, posts, generatedAt)
		if err := write("feed.atom.xml", "application/atom+xml", []byte(atom)); err != nil {
			return result, err
		}
		result.FeedsBuilt++
	}

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(meta.BaseURL, posts, generatedAt)
		if err := write("sitemap.xml", "application/xml", []byte(sitemap)); err != nil {
			return result, err
		}
	}

	if s.cfg.GenerateRobots {
		robots := buildRobots(meta.BaseURL, s.cfg.GenerateSitemap)
		if err := write("robots.txt", "text/plain; charset=utf-8", []byte(robots)); err != nil {
			return result, err
		}
	}

	result.Duration = s.now().Sub(start)

	logging.WithFields(s.deps.Logger, map[string]any{
		"pages":   result.PagesBuilt,
		"feeds":   result.FeedsBuilt,
		"dry_run": opts.DryRun,
	}).Info("site.build.completed")

	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

// Clean removes previously generated output.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := strings.TrimSpace(s.cfg.OutputDir)
	if target == "" || target == "." || target == "/" {
		return errOutputDirRequired
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("site: clean %s: %w", target, err)
	}
	return nil
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

func siteTitle(cfg Config) string {
	if title := strings.TrimSpace(cfg.Title); title != "" {
		return title
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		return base
	}
	return "Blog"
}

func ensureDir(ctx context.Context, writer ArtifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func joinOutputPath(base, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(base, rel)
}
