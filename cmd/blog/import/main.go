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
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("blog import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("blog-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	driver := fs.String("storage-driver", "", "Storage driver (sqlite or memory, defaults to config)")
	dsn := fs.String("storage-dsn", "", "Storage DSN for the sqlite driver")
	logLevel := fs.String("log-level", "", "Log level (trace, debug, info, warn, error, fatal)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting documents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     true,
		StorageDriver: *driver,
		StorageDSN:    *dsn,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := blogcmd.NewImportDirectoryHandler(module.Markdown, module.Logger)
	cmd := blogcmd.ImportDirectoryCommand{
		Directory: *directory,
		DryRun:    *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "blog import command executed successfully")

	return nil
}
