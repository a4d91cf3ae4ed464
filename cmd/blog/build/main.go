package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	blogcmd "github.com/goliatone/go-blog/internal/commands/blog"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	outputDir := fs.String("output-dir", "public", "Directory that receives the generated site")
	baseURL := fs.String("base-url", "", "Absolute base URL used for feeds and the sitemap")
	title := fs.String("title", "", "Site title rendered on generated pages")
	description := fs.String("description", "", "Site description used by feeds")
	driver := fs.String("storage-driver", "", "Storage driver (sqlite or memory, defaults to config)")
	dsn := fs.String("storage-dsn", "", "Storage DSN for the sqlite driver")
	logLevel := fs.String("log-level", "", "Log level (trace, debug, info, warn, error, fatal)")
	skipImport := fs.Bool("skip-import", false, "Build from stored documents without importing the content root first")
	includeDrafts := fs.Bool("include-drafts", false, "Include documents marked as drafts")
	dryRun := fs.Bool("dry-run", false, "Report what would be generated without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     true,
		StorageDriver: *driver,
		StorageDSN:    *dsn,
		OutputDir:     *outputDir,
		BaseURL:       *baseURL,
		SiteTitle:     *title,
		Description:   *description,
		SiteEnabled:   true,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()

	if !*skipImport {
		importHandler := blogcmd.NewImportDirectoryHandler(module.Markdown, module.Logger)
		if err := importHandler.Execute(ctx, blogcmd.ImportDirectoryCommand{Directory: "."}); err != nil {
			return fmt.Errorf("execute import command: %w", err)
		}
	}

	handler := blogcmd.NewBuildSiteHandler(module.Site, module.Logger)
	cmd := blogcmd.BuildSiteCommand{
		IncludeDrafts: *includeDrafts,
		DryRun:        *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "blog build command executed successfully")

	return nil
}
