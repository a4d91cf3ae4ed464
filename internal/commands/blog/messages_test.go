package blogcmd

import "testing"

func TestImportDirectoryCommandValidate(t *testing.T) {
	if err := (ImportDirectoryCommand{Directory: "content"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (ImportDirectoryCommand{}).Validate(); err == nil {
		t.Fatal("expected missing directory to fail validation")
	}
	if err := (ImportDirectoryCommand{Directory: "   "}).Validate(); err == nil {
		t.Fatal("expected blank directory to fail validation")
	}
}

func TestSyncDirectoryCommandValidate(t *testing.T) {
	if err := (SyncDirectoryCommand{Directory: "content", DeleteOrphaned: true}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (SyncDirectoryCommand{}).Validate(); err == nil {
		t.Fatal("expected missing directory to fail validation")
	}
}

func TestCommandTypes(t *testing.T) {
	if got := (ImportDirectoryCommand{}).Type(); got != "blog.markdown.import_directory" {
		t.Fatalf("unexpected type %q", got)
	}
	if got := (SyncDirectoryCommand{}).Type(); got != "blog.markdown.sync_directory" {
		t.Fatalf("unexpected type %q", got)
	}
	if got := (BuildSiteCommand{}).Type(); got != "blog.site.build" {
		t.Fatalf("unexpected type %q", got)
	}
}

func TestBuildSiteCommandValidate(t *testing.T) {
	if err := (BuildSiteCommand{}).Validate(); err != nil {
		t.Fatalf("expected build command to validate, got %v", err)
	}
}
