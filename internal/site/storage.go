package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// WriteFileRequest describes a file write routed through the artifact writer.
type WriteFileRequest struct {
	Path        string
	Content     []byte
	ContentType string
}

// ArtifactWriter abstracts the destination for generated site files so builds
// can target the local filesystem, object storage, or an in-memory sink.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
}

// NewFilesystemWriter returns an ArtifactWriter backed by the local filesystem.
func NewFilesystemWriter() ArtifactWriter {
	return filesystemWriter{}
}

type filesystemWriter struct{}

func (filesystemWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(filepath.FromSlash(dir), 0o755)
}

func (filesystemWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("site: write requires path")
	}
	return os.WriteFile(filepath.FromSlash(req.Path), req.Content, 0o644)
}
