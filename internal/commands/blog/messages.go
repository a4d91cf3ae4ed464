package blogcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "blog.markdown.import_directory"
	syncDirectoryMessageType   = "blog.markdown.sync_directory"
	buildSiteMessageType       = "blog.site.build"
)

// ImportDirectoryCommand triggers a filesystem walk for Markdown documents
// under the provided Directory and persists every post it finds.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DryRun toggles preview mode to collect import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireDirectory(importDirectoryMessageType))),
	)
}

// SyncDirectoryCommand orchestrates a Markdown sync run for the provided
// Directory, optionally deleting stored posts whose source files vanished.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DryRun toggles preview mode to collect sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes stored posts without matching Markdown files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireDirectory(syncDirectoryMessageType))),
	)
}

// BuildSiteCommand renders the static site from the stored posts.
type BuildSiteCommand struct {
	// IncludeDrafts renders draft posts alongside published ones.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DryRun reports what would be written without touching the output directory.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate implements command.Message; build runs carry no required input.
func (BuildSiteCommand) Validate() error { return nil }

func requireDirectory(messageType string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(messageType+".directory_required", "directory is required")
		}
		return nil
	}
}
