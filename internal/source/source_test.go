package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexbee/git-diff-viewer/internal/patch"
)

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "change.patch")
	if err := os.WriteFile(path, []byte("diff --git a/x b/x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := FileSource{Path: path}
	text, err := src.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if text != "diff --git a/x b/x\n" {
		t.Fatalf("unexpected text %q", text)
	}
	if got := src.WatchPaths(); len(got) != 1 || got[0] != dir {
		t.Fatalf("expected watch on containing dir, got %v", got)
	}
}

func TestFileSourceLoadMissing(t *testing.T) {
	src := FileSource{Path: filepath.Join(t.TempDir(), "missing.patch")}
	if _, err := src.Load(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStdinSourceLoadsOnce(t *testing.T) {
	src, err := ReadStdin(strings.NewReader("patch text"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for range 2 {
		text, err := src.Load()
		if err != nil || text != "patch text" {
			t.Fatalf("unexpected reload result %q, %v", text, err)
		}
	}
	if src.WatchPaths() != nil {
		t.Fatalf("stdin source must not be watchable")
	}
}

func TestRenderUnifiedDiffModification(t *testing.T) {
	changes := []localChange{{
		Path: "pkg/file.go",
		From: fileVersion{Present: true, Text: "one\ntwo\n"},
		To:   fileVersion{Present: true, Text: "one\nTWO\n"},
	}}
	text := renderUnifiedDiff(changes)
	if !strings.HasPrefix(text, "diff --git a/pkg/file.go b/pkg/file.go\n") {
		t.Fatalf("missing file separator, got %q", text)
	}
	files := patch.Parse(text)
	if len(files) != 1 {
		t.Fatalf("rendered diff did not parse to one file: %q", text)
	}
	fc := files[0]
	if fc.Status != patch.StatusModified {
		t.Fatalf("unexpected status %v", fc.Status)
	}
	if fc.OriginalContent != "one\ntwo\n" || fc.ModifiedContent != "one\nTWO\n" {
		t.Fatalf("content did not round-trip: %q / %q", fc.OriginalContent, fc.ModifiedContent)
	}
}

func TestRenderUnifiedDiffAdditionAndDeletion(t *testing.T) {
	changes := []localChange{
		{
			Path: "new.txt",
			From: fileVersion{},
			To:   fileVersion{Present: true, Text: "hello\n"},
		},
		{
			Path: "old.txt",
			From: fileVersion{Present: true, Text: "bye\n"},
			To:   fileVersion{},
		},
	}
	files := patch.Parse(renderUnifiedDiff(changes))
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Status != patch.StatusAdded || files[0].ModifiedContent != "hello\n" {
		t.Fatalf("unexpected added file %+v", files[0])
	}
	if files[1].Status != patch.StatusDeleted || files[1].OriginalContent != "bye\n" {
		t.Fatalf("unexpected deleted file %+v", files[1])
	}
}

func TestRenderUnifiedDiffBinaryAndEmpty(t *testing.T) {
	changes := []localChange{
		{Path: "img.png", Binary: true, From: fileVersion{Present: true}, To: fileVersion{Present: true}},
		{Path: "same.txt", From: fileVersion{Present: true, Text: "x\n"}, To: fileVersion{Present: true, Text: "x\n"}},
	}
	files := patch.Parse(renderUnifiedDiff(changes))
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, fc := range files {
		if fc.OriginalContent != "" || fc.ModifiedContent != "" {
			t.Fatalf("expected hunkless section for %s, got %q / %q",
				fc.Path, fc.OriginalContent, fc.ModifiedContent)
		}
	}
}
