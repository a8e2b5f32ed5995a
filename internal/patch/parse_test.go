package patch

import (
	"reflect"
	"testing"
)

func TestParseSingleModifiedFile(t *testing.T) {
	raw := "diff --git a/x.js b/x.js\n@@ -1,2 +1,2 @@\n-foo\n+bar\n baz"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	fc := files[0]
	if fc.Path != "x.js" {
		t.Fatalf("unexpected path %q", fc.Path)
	}
	if fc.Status != StatusModified {
		t.Fatalf("unexpected status %v", fc.Status)
	}
	if fc.OriginalContent != "foo\nbaz\n" {
		t.Fatalf("unexpected original content %q", fc.OriginalContent)
	}
	if fc.ModifiedContent != "bar\nbaz\n" {
		t.Fatalf("unexpected modified content %q", fc.ModifiedContent)
	}
	if fc.Language != "javascript" {
		t.Fatalf("unexpected language %q", fc.Language)
	}
}

func TestParseAddedFile(t *testing.T) {
	raw := "diff --git a/new.py b/new.py\n" +
		"new file mode 100644\n" +
		"index 0000000..e69de29\n" +
		"--- /dev/null\n" +
		"+++ b/new.py\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+print(1)\n" +
		"+print(2)\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	fc := files[0]
	if fc.Status != StatusAdded {
		t.Fatalf("expected added, got %v", fc.Status)
	}
	if fc.OriginalContent != "" {
		t.Fatalf("expected empty original content, got %q", fc.OriginalContent)
	}
	if fc.ModifiedContent != "print(1)\nprint(2)\n" {
		t.Fatalf("unexpected modified content %q", fc.ModifiedContent)
	}
}

func TestParseDeletedFile(t *testing.T) {
	raw := "diff --git a/gone.txt b/gone.txt\n" +
		"deleted file mode 100644\n" +
		"@@ -1,1 +0,0 @@\n" +
		"-goodbye\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Status != StatusDeleted {
		t.Fatalf("expected deleted, got %v", files[0].Status)
	}
	if files[0].OriginalContent != "goodbye\n" {
		t.Fatalf("unexpected original content %q", files[0].OriginalContent)
	}
	if files[0].ModifiedContent != "" {
		t.Fatalf("expected empty modified content, got %q", files[0].ModifiedContent)
	}
}

func TestParseMultipleHunksAccumulate(t *testing.T) {
	raw := "diff --git a/f.go b/f.go\n" +
		"@@ -1,2 +1,2 @@\n" +
		" one\n" +
		"-two\n" +
		"+TWO\n" +
		"@@ -10,2 +10,2 @@\n" +
		" ten\n" +
		"-eleven\n" +
		"+ELEVEN\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if got, want := files[0].OriginalContent, "one\ntwo\nten\neleven\n"; got != want {
		t.Fatalf("original content: got %q, want %q", got, want)
	}
	if got, want := files[0].ModifiedContent, "one\nTWO\nten\nELEVEN\n"; got != want {
		t.Fatalf("modified content: got %q, want %q", got, want)
	}
}

func TestParseIgnoresMetadataBeforeFirstHunk(t *testing.T) {
	raw := "diff --git a/f.txt b/f.txt\n" +
		"index 1234567..89abcde 100644\n" +
		"--- a/f.txt\n" +
		"+++ b/f.txt\n" +
		"@@ -1 +1 @@\n" +
		"-old\n" +
		"+new\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].OriginalContent != "old\n" || files[0].ModifiedContent != "new\n" {
		t.Fatalf("header lines leaked into content: %q / %q",
			files[0].OriginalContent, files[0].ModifiedContent)
	}
}

func TestParseDropsMalformedSegments(t *testing.T) {
	raw := "diff --git not-a-header\n@@ -1 +1 @@\n-a\n+b\n" +
		"diff --git a/ok.txt b/ok.txt\n@@ -1 +1 @@\n-a\n+b\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected malformed segment to be dropped, got %d files", len(files))
	}
	if files[0].Path != "ok.txt" {
		t.Fatalf("unexpected path %q", files[0].Path)
	}
}

func TestParseZeroHunkSegment(t *testing.T) {
	raw := "diff --git a/script.sh b/script.sh\n" +
		"old mode 100644\n" +
		"new mode 100755\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected mode-only segment to be emitted, got %d files", len(files))
	}
	fc := files[0]
	if fc.OriginalContent != "" || fc.ModifiedContent != "" {
		t.Fatalf("expected empty contents, got %q / %q", fc.OriginalContent, fc.ModifiedContent)
	}
	if fc.Status != StatusModified {
		t.Fatalf("expected modified, got %v", fc.Status)
	}
}

func TestParseEmptyAndGarbageInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t\n", "random prose, no separators"} {
		if files := Parse(raw); files != nil {
			t.Fatalf("Parse(%q): expected no files, got %d", raw, len(files))
		}
	}
}

func TestParsePreservesFileOrderAndIsDeterministic(t *testing.T) {
	raw := "diff --git a/b.txt b/b.txt\n@@ -1 +1 @@\n-x\n+y\n" +
		"diff --git a/a.txt b/a.txt\n@@ -1 +1 @@\n-x\n+y\n"
	first := Parse(raw)
	if len(first) != 2 || first[0].Path != "b.txt" || first[1].Path != "a.txt" {
		t.Fatalf("expected patch order to be preserved, got %+v", first)
	}
	second := Parse(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic output, got %+v then %+v", first, second)
	}
}

func TestParseContextLineSpaceStripping(t *testing.T) {
	// Only a single leading space is stripped; further indentation is
	// real content.
	raw := "diff --git a/f.c b/f.c\n@@ -1,2 +1,2 @@\n   indented\n-a\n+b\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if got, want := files[0].OriginalContent, "  indented\na\n"; got != want {
		t.Fatalf("original content: got %q, want %q", got, want)
	}
	if got, want := files[0].ModifiedContent, "  indented\nb\n"; got != want {
		t.Fatalf("modified content: got %q, want %q", got, want)
	}
}

func TestParseQuotedHeaderPaths(t *testing.T) {
	raw := "diff --git \"a/sp ace.txt\" \"b/sp ace.txt\"\n@@ -1 +1 @@\n-x\n+y\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Path != "sp ace.txt" {
		t.Fatalf("unexpected path %q", files[0].Path)
	}
}

func TestParseRenamePrefersNewPath(t *testing.T) {
	raw := "diff --git a/old/name.go b/new/name.go\n@@ -1 +1 @@\n-x\n+y\n"
	files := Parse(raw)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Path != "new/name.go" {
		t.Fatalf("expected new path to win, got %q", files[0].Path)
	}
}
